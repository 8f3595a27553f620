package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrAdminAccessOnly    ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation    ErrCode = "VALIDATION_ERROR"
	ErrInvalidAnswer ErrCode = "INVALID_ANSWER"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound            ErrCode = "NOT_FOUND"
	ErrConflict            ErrCode = "CONFLICT"
	ErrConfirmationMissing ErrCode = "CONFIRMATION_REQUIRED"

	// ─── Survey-specific ───────────────────────────────────────────────
	ErrSessionNotFound    ErrCode = "SESSION_NOT_FOUND"
	ErrSurveyEmpty        ErrCode = "SURVEY_EMPTY"
	ErrQuestionUnanswered ErrCode = "QUESTION_UNANSWERED"
	ErrAlreadySubmitted   ErrCode = "ALREADY_SUBMITTED"
	ErrSubmitFailed       ErrCode = "SUBMIT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable (Latvian) message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Nepareizs e-pasts vai parole."
	case ErrTokenRequired:
		return "Nepieciešams autentifikācijas talons."
	case ErrTokenInvalid:
		return "Autentifikācijas talons nav derīgs."
	case ErrAdminAccessOnly:
		return "Šī sadaļa pieejama tikai administratoriem."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Pārbaudi ievadītos datus."
	case ErrInvalidAnswer:
		return "Atbilde neatbilst jautājuma tipam."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Ieraksts nav atrasts."
	case ErrConflict:
		return "Ieraksts jau eksistē."
	case ErrConfirmationMissing:
		return "Dzēšana jāapstiprina."

	// ─── Survey-specific ───────────────────────────────────────────────
	case ErrSessionNotFound:
		return "Aptaujas sesija nav atrasta vai ir beigusies."
	case ErrSurveyEmpty:
		return "Aptaujā pašlaik nav neviena jautājuma."
	case ErrQuestionUnanswered:
		return "Vispirms atbildi uz šo jautājumu."
	case ErrAlreadySubmitted:
		return "Šī ierīce jau ir iesniegusi aptauju!"
	case ErrSubmitFailed:
		return "Kļūda saglabājot datus. Lūdzu mēģiniet vēlreiz."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Pārāk daudz pieprasījumu. Lūdzu mēģiniet vēlāk."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Servera iekšējā kļūda."
	default:
		return "Negaidīta kļūda."
	}
}
