// Package msgs holds the generated ROS message and service types, one Go
// package per ROS package. Regenerate them with ROS_PACKAGE_PATH pointing
// at the definitions.
package msgs

//go:generate go run ../cmd/gengo --out . msg std_msgs/Header std_msgs/ColorRGBA
//go:generate go run ../cmd/gengo --out . msg geometry_msgs/Point geometry_msgs/Quaternion geometry_msgs/Vector3 geometry_msgs/Pose geometry_msgs/PoseStamped geometry_msgs/Transform geometry_msgs/TransformStamped
//go:generate go run ../cmd/gengo --out . msg tf2_msgs/TFMessage
//go:generate go run ../cmd/gengo --out . msg visualization_msgs/Marker visualization_msgs/MenuEntry visualization_msgs/InteractiveMarkerControl visualization_msgs/InteractiveMarker visualization_msgs/InteractiveMarkerPose visualization_msgs/InteractiveMarkerUpdate visualization_msgs/InteractiveMarkerInit visualization_msgs/InteractiveMarkerFeedback
//go:generate go run ../cmd/gengo --out . srv std_srvs/Empty cob_srvs/SetString
