package frametarget

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rosgo/frametarget/msgs/cob_srvs"
	"github.com/rosgo/frametarget/msgs/std_srvs"
	"github.com/rosgo/frametarget/ros"
)

const (
	StartTrackingService = "start_tracking"
	StopTrackingService  = "stop_tracking"
)

// TrackingService controls the frame tracker.
type TrackingService interface {
	// WaitForServices blocks until the tracker accepts calls.
	WaitForServices(ctx context.Context) error
	StartTracking(frame string) (*cob_srvs.SetStringResponse, error)
	StopTracking() error
}

// ServiceNode is the part of ros.Node the tracking client needs.
type ServiceNode interface {
	NewServiceClient(service string, srvType ros.ServiceType) ros.ServiceClient
	ServiceAvailable(service string) bool
}

// RosTrackingService calls the tracker's start_tracking and stop_tracking
// services.
type RosTrackingService struct {
	node          ServiceNode
	start         ros.ServiceClient
	stop          ros.ServiceClient
	clock         clock.Clock
	retryInterval time.Duration
	logger        *logrus.Entry
}

func NewRosTrackingService(node ServiceNode, clk clock.Clock, retryInterval time.Duration, logger *logrus.Entry) *RosTrackingService {
	return &RosTrackingService{
		node:          node,
		start:         node.NewServiceClient(StartTrackingService, cob_srvs.SrvSetString),
		stop:          node.NewServiceClient(StopTrackingService, std_srvs.SrvEmpty),
		clock:         clk,
		retryInterval: retryInterval,
		logger:        logger,
	}
}

func (s *RosTrackingService) WaitForServices(ctx context.Context) error {
	for _, service := range []string{StartTrackingService, StopTrackingService} {
		s.logger.Infof("Waiting for %s...", service)
		for !s.node.ServiceAvailable(service) {
			s.logger.Warnf("%s is not available yet", service)
			if err := sleep(ctx, s.clock, s.retryInterval); err != nil {
				return errors.Wrapf(err, "wait for %s", service)
			}
		}
		s.logger.Infof("...%s is available", service)
	}
	return nil
}

func (s *RosTrackingService) StartTracking(frame string) (*cob_srvs.SetStringResponse, error) {
	var srv cob_srvs.SetString
	srv.Request.Data = frame
	if err := s.start.Call(&srv); err != nil {
		return nil, errors.Wrap(err, StartTrackingService)
	}
	return &srv.Response, nil
}

func (s *RosTrackingService) StopTracking() error {
	var srv std_srvs.Empty
	return errors.Wrap(s.stop.Call(&srv), StopTrackingService)
}

func (s *RosTrackingService) Shutdown() {
	s.start.Shutdown()
	s.stop.Shutdown()
}

// sleep waits for d on clk or until ctx is done.
func sleep(ctx context.Context, clk clock.Clock, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-clk.After(d):
		return nil
	}
}
