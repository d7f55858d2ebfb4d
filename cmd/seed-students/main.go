// Command seed-students fills class XII TKJ 2 with 50 demo accounts for
// load testing and frontend development. All accounts share the password
// "belajar123".
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/database"
	"github.com/smklab/lms-backend/internal/logger"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
	"github.com/smklab/lms-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)

	authService := service.NewAuthService(cfg, rdb)
	classService := service.NewClassService(classRepo)
	studentService := service.NewStudentService(studentRepo, authService)

	fmt.Println("=== Seeding 50 Students ===")

	const (
		gradeLevel  = "XII"
		majorCode   = "TKJ"
		groupNumber = 2
	)

	var classID int
	err = pool.QueryRow(ctx,
		`SELECT id FROM classes WHERE grade_level = $1 AND major_code = $2 AND group_number = $3`,
		gradeLevel, majorCode, groupNumber).Scan(&classID)
	switch {
	case err == pgx.ErrNoRows:
		fmt.Println("Class XII TKJ 2 not found. Creating it...")
		created, err := classService.Create(ctx, &model.CreateClassRequest{
			GradeLevel:  gradeLevel,
			MajorCode:   majorCode,
			GroupNumber: groupNumber,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create class")
		}
		classID = created.ID
		fmt.Printf("Created class with ID: %d\n", classID)
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to check existing class")
	default:
		fmt.Printf("Found existing class with ID: %d\n", classID)
	}

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
		"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
		"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Umi Kalsum", "Vina Panduwinata",
		"Wahyu Hidayat", "Xena Maharani", "Yudi Pratama", "Zaki Anwar", "Alifia Zahra",
		"Bagas Saputra", "Citra Kirana", "Dimas Anggara", "Elisa Novita", "Fikri Maulana",
		"Gali Rakasiwi", "Hani Hanifah", "Iqbal Ramadhan", "Jasmine Azzahra", "Kevin Sanjaya",
		"Larasati Dewi", "Miko Pambudi", "Nia Ramadhani", "Oscar Lawalata", "Puput Melati",
		"Reza Rahadian", "Sari Nila", "Tigor Siahaan", "Utari Maharani", "Vicky Prasetyo",
	}

	created := 0
	for i, name := range names {
		gender := model.GenderMale
		if i%2 != 0 {
			gender = model.GenderFemale
		}

		student := &model.Student{
			NIS:          fmt.Sprintf("%05d", i+1),
			NISN:         fmt.Sprintf("00%08d", i+1),
			Name:         name,
			Gender:       gender,
			PasswordHash: "belajar123", // hashed by the service
			ClassID:      classID,
		}

		if err := studentService.Create(ctx, student); err != nil {
			fmt.Printf("Error creating student %s (NISN: %s): %v\n", student.Name, student.NISN, err)
			continue
		}
		created++
		if created%10 == 0 {
			fmt.Printf("Created %d students...\n", created)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", created, len(names))
}
