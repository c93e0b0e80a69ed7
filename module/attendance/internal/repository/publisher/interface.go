package publisher

import (
	"context"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

type AttendancePublisher interface {
	PublishEvent(ctx context.Context, event *domain.AttendanceEvent) error
}
