package errors

// ErrorCode identifies a class of application error
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_HTTP_OK

	// Analysis pipeline
	ErrorCode_NETWORK_UNAVAILABLE
	ErrorCode_INVALID_MEDIA_INPUT
	ErrorCode_CONTENT_BLOCKED
	ErrorCode_EMPTY_RESPONSE
	ErrorCode_MALFORMED_RESPONSE
	ErrorCode_PROCESSING_TIMEOUT
	ErrorCode_PROCESSING_FAILED
	ErrorCode_ANALYSIS_IN_PROGRESS

	// Live capture
	ErrorCode_MIC_PERMISSION_DENIED
	ErrorCode_NO_SPEECH_DETECTED
	ErrorCode_RECOGNITION_NETWORK

	// Infrastructure
	ErrorCode_HISTORY_FAILED
	ErrorCode_STORAGE_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:               "UNKNOWN",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_HTTP_OK:               "OK",
	ErrorCode_NETWORK_UNAVAILABLE:   "NETWORK_UNAVAILABLE",
	ErrorCode_INVALID_MEDIA_INPUT:   "INVALID_MEDIA_INPUT",
	ErrorCode_CONTENT_BLOCKED:       "CONTENT_BLOCKED",
	ErrorCode_EMPTY_RESPONSE:        "EMPTY_RESPONSE",
	ErrorCode_MALFORMED_RESPONSE:    "MALFORMED_RESPONSE",
	ErrorCode_PROCESSING_TIMEOUT:    "PROCESSING_TIMEOUT",
	ErrorCode_PROCESSING_FAILED:     "PROCESSING_FAILED",
	ErrorCode_ANALYSIS_IN_PROGRESS:  "ANALYSIS_IN_PROGRESS",
	ErrorCode_MIC_PERMISSION_DENIED: "MIC_PERMISSION_DENIED",
	ErrorCode_NO_SPEECH_DETECTED:    "NO_SPEECH_DETECTED",
	ErrorCode_RECOGNITION_NETWORK:   "RECOGNITION_NETWORK",
	ErrorCode_HISTORY_FAILED:        "HISTORY_FAILED",
	ErrorCode_STORAGE_FAILED:        "STORAGE_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
