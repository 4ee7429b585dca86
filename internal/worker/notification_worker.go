package worker

// notification_worker.go
// Delivers requisition notifications (email + Slack) from QueueNotification.
// Delivery is at-most-once: a failed attempt is logged, counted, and parked in
// the DLQ for inspection — it is never retried and never fails the mutation
// that produced it.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/CroSSer23/spa-procurement/internal/metrics"
)

// NotificationKind discriminates the three lifecycle notifications.
type NotificationKind string

const (
	KindSubmitted     NotificationKind = "submitted"
	KindEdited        NotificationKind = "edited"
	KindStatusChanged NotificationKind = "statusChanged"
)

// NotificationEvent is the job payload emitted by the lifecycle manager after
// a transaction commits.
type NotificationEvent struct {
	Kind           NotificationKind `json:"kind"`
	RequisitionID  string           `json:"requisition_id"`
	LocationName   string           `json:"location_name"`
	ActorName      string           `json:"actor_name"`
	FromStatus     *string          `json:"from_status,omitempty"`
	ToStatus       *string          `json:"to_status,omitempty"`
	Message        *string          `json:"message,omitempty"`
	Recipients     []string         `json:"recipients"`
	AttachmentPath string           `json:"attachment_path,omitempty"`
}

// EmailSender sends one email; satisfied by infra.Mailer.
type EmailSender interface {
	Send(to, subject, body, attachmentPath string) error
}

// SlackPoster posts one webhook message; satisfied by infra.SlackClient.
type SlackPoster interface {
	Enabled() bool
	Post(ctx context.Context, text string) error
}

// NotificationWorker processes notification jobs from QueueNotification.
type NotificationWorker struct {
	mailer EmailSender
	slack  SlackPoster
	appURL string
}

func NewNotificationWorker(mailer EmailSender, slack SlackPoster, appURL string) *NotificationWorker {
	return &NotificationWorker{mailer: mailer, slack: slack, appURL: appURL}
}

// Process delivers one event to every recipient plus the Slack channel.
func (w *NotificationWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var ev NotificationEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return
	}

	subject, body := w.render(ev)

	for _, to := range ev.Recipients {
		if to == "" {
			continue
		}
		if err := w.mailer.Send(to, subject, body, ev.AttachmentPath); err != nil {
			metrics.NotificationFailures.WithLabelValues("email").Inc()
			log.Error().Err(err).
				Str("to", to).
				Str("requisition_id", ev.RequisitionID).
				Msg("notification_worker: email delivery failed")
			SendToDLQ(ctx, rdb, QueueNotification, "notification", raw, err.Error(), 1)
		}
	}

	if w.slack != nil && w.slack.Enabled() {
		if err := w.slack.Post(ctx, w.slackText(ev)); err != nil {
			metrics.NotificationFailures.WithLabelValues("slack").Inc()
			log.Error().Err(err).
				Str("requisition_id", ev.RequisitionID).
				Msg("notification_worker: slack delivery failed")
		}
	}
}

func (w *NotificationWorker) render(ev NotificationEvent) (subject, body string) {
	link := fmt.Sprintf("%s/requisitions/%s", w.appURL, ev.RequisitionID)

	var b strings.Builder
	switch ev.Kind {
	case KindSubmitted:
		subject = fmt.Sprintf("New requisition from %s", ev.LocationName)
		fmt.Fprintf(&b, "%s submitted a new requisition for %s.\n", ev.ActorName, ev.LocationName)
	case KindEdited:
		subject = fmt.Sprintf("Requisition updated: %s", ev.LocationName)
		fmt.Fprintf(&b, "%s edited the requisition for %s.\n", ev.ActorName, ev.LocationName)
	case KindStatusChanged:
		to := ""
		if ev.ToStatus != nil {
			to = *ev.ToStatus
		}
		subject = fmt.Sprintf("Requisition status updated: %s", to)
		fmt.Fprintf(&b, "The requisition for %s has been updated", ev.LocationName)
		if ev.FromStatus != nil && ev.ToStatus != nil {
			fmt.Fprintf(&b, " (%s → %s)", *ev.FromStatus, *ev.ToStatus)
		}
		b.WriteString(".\n")
	default:
		subject = "Requisition notification"
	}
	if ev.Message != nil && *ev.Message != "" {
		fmt.Fprintf(&b, "Comment: %s\n", *ev.Message)
	}
	fmt.Fprintf(&b, "\nView it at %s\n", link)
	return subject, b.String()
}

func (w *NotificationWorker) slackText(ev NotificationEvent) string {
	switch ev.Kind {
	case KindSubmitted:
		return fmt.Sprintf(":inbox_tray: New requisition for *%s* by %s", ev.LocationName, ev.ActorName)
	case KindEdited:
		return fmt.Sprintf(":pencil2: Requisition for *%s* edited by %s", ev.LocationName, ev.ActorName)
	default:
		to := ""
		if ev.ToStatus != nil {
			to = *ev.ToStatus
		}
		return fmt.Sprintf(":arrows_counterclockwise: Requisition for *%s* moved to *%s*", ev.LocationName, to)
	}
}
