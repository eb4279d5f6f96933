package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Ocorreu um erro interno. Por favor, tente novamente.",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s não encontrado", resource),
	}
}

// Analysis Errors

// ErrNetworkUnavailable signals the connectivity precondition was not met.
func ErrNetworkUnavailable() AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_NETWORK_UNAVAILABLE,
		Message:  "Você parece estar offline. Verifique sua conexão e tente novamente.",
	}
}

// ErrInvalidMediaInput signals a wrong MIME type or an empty recording.
func ErrInvalidMediaInput(reason string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_MEDIA_INPUT,
		Message:  "Por favor, envie um arquivo de áudio válido.",
	}.WithDetail("reason", reason)
}

// ErrContentBlocked signals the model refused the input for moderation reasons.
func ErrContentBlocked(reason string) AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_CONTENT_BLOCKED,
		Message:  fmt.Sprintf("A análise foi bloqueada. Motivo: %s. Por favor, ajuste o conteúdo e tente novamente.", reason),
	}.WithDetail("block_reason", reason)
}

// ErrEmptyResponse signals the model returned no text and no block reason.
func ErrEmptyResponse() AppError {
	return AppError{
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_EMPTY_RESPONSE,
		Message:  "A IA retornou uma resposta vazia. Isso pode ocorrer devido a filtros de segurança ou um problema temporário. Tente novamente.",
	}
}

// ErrMalformedResponse signals the model reply did not parse as the expected
// JSON schema. The raw text is kept in the details for diagnostics.
func ErrMalformedResponse(err error, raw string) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_MALFORMED_RESPONSE,
		Message:  fmt.Sprintf("A IA retornou uma resposta mal formatada. Detalhes do erro: %v", err),
	}.WithDetail("raw_response", raw)
}

// ErrProcessingTimeout signals the uploaded file never became ACTIVE within
// the poll budget.
func ErrProcessingTimeout(lastState string) AppError {
	return AppError{
		HTTPCode: http.StatusGatewayTimeout,
		Code:     ErrorCode_PROCESSING_TIMEOUT,
		Message:  fmt.Sprintf("O arquivo não pôde ser processado a tempo. Estado final: %s", lastState),
	}.WithDetail("last_state", lastState)
}

// ErrProcessingFailed signals the uploaded file reached a terminal state
// other than ACTIVE.
func ErrProcessingFailed(lastState string) AppError {
	return AppError{
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_PROCESSING_FAILED,
		Message:  fmt.Sprintf("Falha ao processar o arquivo enviado. Estado final: %s", lastState),
	}.WithDetail("last_state", lastState)
}

// ErrAnalysisInProgress rejects re-entrant submissions for the same session.
func ErrAnalysisInProgress() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ANALYSIS_IN_PROGRESS,
		Message:  "Já existe uma análise em andamento. Aguarde a conclusão antes de enviar outra.",
	}
}

// Live Capture Errors

func ErrMicrophonePermissionDenied() AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_MIC_PERMISSION_DENIED,
		Message:  "Permissão para o microfone negada. Por favor, habilite o acesso nas configurações do seu navegador.",
	}
}

func ErrNoSpeechDetected() AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_NO_SPEECH_DETECTED,
		Message:  "Nenhuma fala foi detectada.",
	}
}

func ErrRecognitionNetwork(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_RECOGNITION_NETWORK,
		Message:  "Erro de rede. Verifique sua conexão com a internet e tente novamente.",
	}
}

// Infrastructure Errors

func ErrHistoryFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_HISTORY_FAILED,
		Message:  "Falha ao acessar o histórico de análises.",
	}.WithDetail("operation", operation)
}

func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILED,
		Message:  "Falha ao acessar o armazenamento de arquivos.",
	}.WithDetail("operation", operation)
}
