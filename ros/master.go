package ros

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/rosgo/frametarget/xmlrpc"
)

const (
	APIStatusError   = -1
	APIStatusFailure = 0
	APIStatusSuccess = 1
)

// APIError is a ROS master or slave API call that returned a non-success status.
type APIError struct {
	Method  string
	Code    int32
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed with code %d: %s", e.Method, e.Code, e.Message)
}

// callRosAPI performs a ROS API call and unpacks the (code, message, value) triplet.
func callRosAPI(calleeURI string, method string, args ...interface{}) (interface{}, error) {
	result, err := xmlrpc.Call(calleeURI, method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s(%s)", method, calleeURI)
	}

	xs, ok := result.([]interface{})
	if !ok || len(xs) != 3 {
		return nil, errors.Errorf("%s: malformed ROS API result %v", method, result)
	}
	code, ok := xs[0].(int32)
	if !ok {
		return nil, errors.Errorf("%s: status code is not an int", method)
	}
	message, ok := xs[1].(string)
	if !ok {
		return nil, errors.Errorf("%s: status message is not a string", method)
	}
	if code != APIStatusSuccess {
		return nil, &APIError{Method: method, Code: code, Message: message}
	}
	return xs[2], nil
}

// buildRosAPIResult packs a slave API reply.
func buildRosAPIResult(code int32, message string, value interface{}) interface{} {
	return []interface{}{code, message, value}
}
