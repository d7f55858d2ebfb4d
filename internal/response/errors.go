package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrPermissionDenied  ErrCode = "PERMISSION_DENIED"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrStaffAccessOnly   ErrCode = "STAFF_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrActionForbidden  ErrCode = "ACTION_FORBIDDEN"

	// ─── Quiz / attempt ────────────────────────────────────────────────
	ErrQuizNotAvailable     ErrCode = "QUIZ_NOT_AVAILABLE"
	ErrQuizNotPublished     ErrCode = "QUIZ_NOT_PUBLISHED"
	ErrQuizNotDraft         ErrCode = "QUIZ_NOT_DRAFT"
	ErrNotQuizAuthor        ErrCode = "NOT_QUIZ_AUTHOR"
	ErrNoQuestions          ErrCode = "NO_QUESTIONS"
	ErrNotEnrolled          ErrCode = "NOT_ENROLLED"
	ErrAttemptNotFound      ErrCode = "ATTEMPT_NOT_FOUND"
	ErrAttemptSubmitted     ErrCode = "ATTEMPT_ALREADY_SUBMITTED"
	ErrAttemptExpired       ErrCode = "ATTEMPT_EXPIRED"
	ErrAnswerNotGradable    ErrCode = "ANSWER_NOT_GRADABLE"
	ErrScoreExceedsMaximum  ErrCode = "SCORE_EXCEEDS_MAXIMUM"

	// ─── Assignments ───────────────────────────────────────────────────
	ErrAlreadySubmitted ErrCode = "ALREADY_SUBMITTED"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email/NISN atau kata sandi salah."
	case ErrSessionActive:
		return "Anda sudah login di perangkat lain."
	case ErrSessionInvalidated:
		return "Sesi Anda telah berakhir. Silakan login kembali."
	case ErrTokenRequired:
		return "Token autentikasi diperlukan."
	case ErrTokenInvalid:
		return "Token autentikasi tidak valid."
	case ErrTokenExpired:
		return "Token autentikasi telah kedaluwarsa."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Anda tidak memiliki izin untuk mengakses sumber daya ini."
	case ErrPermissionDenied:
		return "Izin ditolak."
	case ErrStudentAccessOnly:
		return "Sumber daya ini terbatas untuk siswa."
	case ErrStaffAccessOnly:
		return "Sumber daya ini terbatas untuk guru dan administrator."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."
	case ErrInvalidID:
		return "Format ID tidak valid."
	case ErrInvalidPayload:
		return "Payload permintaan tidak valid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Sumber daya tidak ditemukan."
	case ErrConflict:
		return "Sumber daya sudah ada."
	case ErrDependencyExists:
		return "Data tidak dapat dihapus karena masih digunakan oleh data lain."
	case ErrActionForbidden:
		return "Tindakan ini tidak diperbolehkan."

	// ─── Quiz / attempt ────────────────────────────────────────────────
	case ErrQuizNotAvailable:
		return "Kuis ini saat ini tidak tersedia."
	case ErrQuizNotPublished:
		return "Kuis ini belum dipublikasikan."
	case ErrQuizNotDraft:
		return "Kuis ini tidak dalam status DRAFT."
	case ErrNotQuizAuthor:
		return "Anda bukan pembuat kuis ini."
	case ErrNoQuestions:
		return "Kuis ini tidak memiliki pertanyaan."
	case ErrNotEnrolled:
		return "Anda tidak terdaftar di kelas untuk kuis ini."
	case ErrAttemptNotFound:
		return "Pengerjaan kuis tidak ditemukan."
	case ErrAttemptSubmitted:
		return "Kuis ini sudah dikumpulkan."
	case ErrAttemptExpired:
		return "Waktu pengerjaan kuis telah habis."
	case ErrAnswerNotGradable:
		return "Jawaban ini tidak memerlukan penilaian manual."
	case ErrScoreExceedsMaximum:
		return "Nilai melebihi poin maksimal pertanyaan."

	// ─── Assignments ───────────────────────────────────────────────────
	case ErrAlreadySubmitted:
		return "Anda sudah mengumpulkan tugas ini."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "Unggah file diperlukan."
	case ErrUnsupportedFile:
		return "Jenis file tidak didukung."
	case ErrFileTooLarge:
		return "Ukuran file melebihi batas."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Terlalu banyak permintaan. Silakan coba lagi nanti."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Terjadi kesalahan server internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
