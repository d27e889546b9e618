// Package notify publishes tag write events to an SNS topic on a
// best-effort basis; disabled unless a topic ARN is configured.
// Failures are logged and swallowed, mirroring the teacher's
// fire-and-forget notify() in daemon/ssh_agent.go.
package notify

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("notify")

// Notifier publishes TagWritten events to one SNS topic.
type Notifier struct {
	topicARN string
	client   *sns.SNS
}

// TagWritten is the event body published after each completed write
// exchange, carrying the response status whether or not the write
// succeeded (spec.md §8 supplemented features).
type TagWritten struct {
	TagID  uint16 `json:"tag_id"`
	Status string `json:"status"`
}

// New returns a Notifier for topicARN, or nil if topicARN is empty —
// the server treats a nil *Notifier as "notifications disabled".
func New(topicARN string) (*Notifier, error) {
	if topicARN == "" {
		return nil, nil
	}
	sess, err := session.NewSession(aws.NewConfig())
	if err != nil {
		return nil, err
	}
	return &Notifier{topicARN: topicARN, client: sns.New(sess)}, nil
}

// Publish best-effort publishes a TagWritten event. A nil receiver is a
// no-op, so callers can hold an always-valid *Notifier field.
func (n *Notifier) Publish(event TagWritten) {
	if n == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Error("marshal notify event: " + err.Error())
		return
	}
	_, err = n.client.Publish(&sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		log.Error("sns publish: " + err.Error())
		return
	}
}
