package code

import "net/http"

// 全局错误码定义
var (
	ErrorServerInternal = NewError(http.StatusInternalServerError, []string{"server"},
		"Internal server error", "Something went wrong, try again later")

	ErrorInvalidParams = NewError(http.StatusUnprocessableEntity, []string{"body"},
		"Invalid request parameters", "")

	ErrorNotFoundAPI = NewError(http.StatusNotFound, []string{"path"},
		"Resource not found", "The requested endpoint does not exist")

	ErrorTooManyRequests = NewError(http.StatusTooManyRequests, []string{"server"},
		"Too many requests", "Request rate limit exceeded, slow down")

	ErrorRequestTimeout = NewError(http.StatusGatewayTimeout, []string{"server"},
		"Request timeout", "The request took too long to process")
)

// 认证与用户错误码定义
var (
	ErrorWeakPassword = NewError(http.StatusUnprocessableEntity, []string{"body", "password"},
		"Password is too weak",
		"Password must be 8-64 characters long and contain a digit, a lowercase letter, an uppercase letter and a special character")

	ErrorUsernameTaken = NewError(http.StatusUnauthorized, []string{"body", "username"},
		"Username is already taken", "This username is already taken, try another one")

	ErrorUserNotFound = NewError(http.StatusNotFound, []string{"header", "Authorization"},
		"User not found", "No user found with the provided credentials")

	ErrorBadCredentials = NewError(http.StatusUnauthorized, []string{"body", "username", "password"},
		"Invalid username or password", "Check your credentials and try again")

	ErrorInvalidToken = NewError(http.StatusUnauthorized, []string{"header", "Authorization"},
		"Invalid token", "Token is expired, malformed or has an invalid type")
)

// 笔记错误码定义
var (
	ErrorNoteNotFound = NewError(http.StatusNotFound, []string{"path", "note_id"},
		"Note not found", "No note found with the provided id")

	ErrorInvalidUpdate = NewError(http.StatusNotFound, []string{"body", "title", "text"},
		"Invalid update input", "Update input is empty or identical to the current note")

	ErrorSummarization = NewError(http.StatusBadGateway, []string{"server"},
		"Summarization failed", "The summarization collaborator did not produce a result")
)
