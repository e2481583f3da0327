package ros

// ServiceType describes a ROS service: its name, MD5 sum and the request
// and response message types.
type ServiceType interface {
	MD5Sum() string
	Name() string
	RequestType() MessageType
	ResponseType() MessageType
	NewService() Service
}

// Service holds a request and its response.
type Service interface {
	ReqMessage() Message
	ResMessage() Message
}
