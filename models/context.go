package models

import (
	"encoding/json"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

// Context wraps a single request/response pair and provides the
// response helpers used by every controller
type Context struct {
	Request        *http.Request
	ResponseWriter http.ResponseWriter
	RouteVars      map[string]string
	StartTime      time.Time
}

// ErrorResponse is the JSON shape for failures. Successful data
// responses are the bare array of records, which is the wire format the
// existing frontend consumes.
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []string `json:"error"`
}

// MakeContext creates a Context for this request
func MakeContext(
	request *http.Request,
	responseWriter http.ResponseWriter,
) (
	*Context,
	int,
	error,
) {
	c := new(Context)
	c.Request = request
	c.ResponseWriter = responseWriter
	c.RouteVars = mux.Vars(request)
	c.StartTime = time.Now()

	return c, http.StatusOK, nil
}

// GetHTTPMethod returns the HTTP method, accounting for method
// overriding on POST
func (c *Context) GetHTTPMethod() string {
	method := c.Request.Method
	if method == "POST" {
		if m := c.Request.Header.Get("X-HTTP-Method-Override"); m != "" {
			method = m
		}
	}
	return method
}

// RespondWithData marshals data as-is and writes it with the given
// status code
func (c *Context) RespondWithData(data interface{}, statusCode int) error {
	output, err := json.Marshal(data)
	if err != nil {
		glog.Errorf("json.Marshal(data) %+v", err)
		return c.RespondWithErrorMessage(
			"Could not marshal response",
			http.StatusInternalServerError,
		)
	}

	c.setStandardHeaders()
	return c.WriteResponse(output, statusCode)
}

// RespondWithErrorMessage responds with a custom status code and an
// error message
func (c *Context) RespondWithErrorMessage(
	message string,
	statusCode int,
) error {
	output, err := json.Marshal(ErrorResponse{
		Status: statusCode,
		Errors: []string{message},
	})
	if err != nil {
		glog.Errorf("json.Marshal(errorResponse) %+v", err)
		output = []byte(`{"status":500,"error":["response marshalling failed"]}`)
		statusCode = http.StatusInternalServerError
	}

	c.setStandardHeaders()
	return c.WriteResponse(output, statusCode)
}

// RespondWithOptions writes the Allow header for an OPTIONS request
func (c *Context) RespondWithOptions(options []string) error {
	allow := ""
	for i, option := range options {
		if i > 0 {
			allow += ","
		}
		allow += option
	}
	c.ResponseWriter.Header().Set("Allow", allow)
	c.ResponseWriter.Header().Set("Access-Control-Allow-Origin", "*")
	c.ResponseWriter.Header().Set("Access-Control-Allow-Methods", allow)
	c.ResponseWriter.Header().Set("Content-Length", "0")
	c.ResponseWriter.WriteHeader(http.StatusOK)
	return nil
}

func (c *Context) setStandardHeaders() {
	// Prevent content type detection, a.k.a. sniffing
	c.ResponseWriter.Header().Set("Content-Type", "application/json")

	// The original service ran with CORS open to all origins and the
	// frontend depends on it
	c.ResponseWriter.Header().Set("Access-Control-Allow-Origin", "*")
}

// WriteResponse sets the status and writes the body
func (c *Context) WriteResponse(output []byte, statusCode int) error {
	c.ResponseWriter.WriteHeader(statusCode)

	// HEAD requests return no body and are used to check headers for
	// cache freshness probes
	if c.GetHTTPMethod() == "HEAD" {
		return nil
	}

	_, err := c.ResponseWriter.Write(output)

	// We only log at error severity when an error is not the result of
	// the client disconnecting. "broken pipe" is a syscall.EPIPE error
	// that indicates client disconnection.
	if err != nil {
		opErr, ok := err.(*net.OpError)
		if !ok || opErr.Err != syscall.EPIPE {
			glog.Errorf(
				"Error writing %s response to %s : %+v",
				c.GetHTTPMethod(),
				c.Request.URL.String(),
				err,
			)
		}
		return err
	}

	return nil
}
