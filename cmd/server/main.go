package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/database"
	"github.com/smklab/lms-backend/internal/handler"
	"github.com/smklab/lms-backend/internal/logger"
	"github.com/smklab/lms-backend/internal/repository"
	"github.com/smklab/lms-backend/internal/router"
	"github.com/smklab/lms-backend/internal/service"
	"github.com/smklab/lms-backend/internal/validator"
	"github.com/smklab/lms-backend/internal/worker"
)

func main() {
	// ─── Configuration & Logging ──────────────────────────────────────
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting LMS Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Datastores ───────────────────────────────────────────────────
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

	// ─── Repositories ─────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	majorRepo := repository.NewMajorRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	monitorRepo := repository.NewMonitorRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Services ─────────────────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	studentService := service.NewStudentService(studentRepo, authService)
	userService := service.NewUserService(userRepo, roleRepo, authService)
	classService := service.NewClassService(classRepo)
	subjectService := service.NewSubjectService(subjectRepo, log)
	majorService := service.NewMajorService(majorRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, classRepo)
	materialService := service.NewMaterialService(materialRepo, enrollmentService)
	gradeService := service.NewGradeService(gradeRepo, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, enrollmentService, gradeService)
	quizService := service.NewQuizService(quizRepo, questionRepo, enrollmentService, rdb, log)
	attemptService := service.NewAttemptService(attemptRepo, quizRepo, questionRepo, quizService, enrollmentService, gradeService, rdb, log)
	announcementService := service.NewAnnouncementService(announcementRepo)
	settingService := service.NewSettingService(settingRepo, log)
	monitorService := service.NewMonitorService(monitorRepo)
	dashboardService := service.NewDashboardService(dashboardRepo)
	mediaService := service.NewMediaService(cfg)

	// ─── Handlers ─────────────────────────────────────────────────────
	handlers := &router.Handlers{
		Auth: handler.NewAuthHandler(authService, studentService, userService),
		StudentPortal: handler.NewStudentPortalHandler(
			attemptService, quizService, materialService,
			assignmentService, gradeService, announcementService,
		),
		StudentMgmt:  handler.NewStudentManagementHandler(studentService, authService),
		User:         handler.NewUserHandler(userService),
		Role:         handler.NewRoleHandler(userService),
		Class:        handler.NewClassHandler(classService),
		Subject:      handler.NewSubjectHandler(subjectService),
		Major:        handler.NewMajorHandler(majorService),
		Enrollment:   handler.NewEnrollmentHandler(enrollmentService),
		Material:     handler.NewMaterialHandler(materialService),
		Assignment:   handler.NewAssignmentHandler(assignmentService),
		Quiz:         handler.NewQuizHandler(quizService, attemptService),
		Question:     handler.NewQuestionHandler(quizService),
		Grade:        handler.NewGradeHandler(gradeService),
		Announcement: handler.NewAnnouncementHandler(announcementService),
		Media:        handler.NewMediaHandler(mediaService),
		Setting:      handler.NewSettingHandler(settingService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Monitor:      handler.NewMonitorHandler(rdb, quizService, attemptService, monitorService, log),
		System:       handler.NewSystemHandler(rdb, log),
		WS:           handler.NewWSHandler(attemptService, log, cfg.AllowedOrigins),
	}

	// ─── Background Workers ───────────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	autosaveWorker := worker.NewAutosaveWorker(pool, rdb, log)
	gradingWorker := worker.NewGradingWorker(pool, rdb, log)
	deadlineWorker := worker.NewDeadlineWorker(attemptService, cfg.DeadlineSweepInterval, log)

	go autosaveWorker.Start(workerCtx)
	go gradingWorker.Start(workerCtx)
	go deadlineWorker.Start(workerCtx)

	// ─── Prewarm Quiz Caches ──────────────────────────────────────────
	// Published quizzes go into Redis before traffic arrives; a whole
	// class starting a quiz at once would otherwise stampede Postgres
	// through the lazy-load path.
	if err := quizService.PrewarmAllCaches(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── HTTP Server ──────────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router.SetupRouter(authService, handlers, cfg),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	// HTTP first, then workers, so in-flight submits can still enqueue
	// their scores before the queue consumers go away.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()
	time.Sleep(2 * time.Second) // workers drain their queues on cancel

	log.Info().Msg("Shutdown complete")
}
