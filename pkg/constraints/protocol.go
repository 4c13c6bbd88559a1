package constraints

// HTTP headers shared by the server and the Go client.
const (
	HeaderSDKKey    = "X-Loyalty-Key"
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
	HeaderDevPass   = "X-Dev-Pass"
)

const RoleAdmin = "admin"
