package errcode

// Business error codes. 0 means success; 1xxxx parameter/auth errors;
// 5xxxx server-side errors.
const (
	Success = 0

	ParamBindError    = 10001
	UnauthorizedError = 10002
	NotFoundError     = 10003
	ConflictError     = 10004

	InternalServerError = 50000
	DatabaseError       = 50001
	StorageError        = 50002
	RetrievalError      = 50003
)
