package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// Routing keys published by this service.
const (
	LessonStarted          = "progress.lesson.started"
	LessonCompleted        = "progress.lesson.completed"
	LessonReset            = "progress.lesson.reset"
	AchievementUnlocked    = "progress.achievement.unlocked"
	AnswerEvaluated        = "progress.answer.evaluated"
	PronunciationEvaluated = "progress.pronunciation.evaluated"
)

type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends a fire-and-forget domain event. The routing key is the
// event type; consumers bind with topic patterns like "progress.lesson.*".
func (p *EventPublisher) Publish(eventType string, payload interface{}) error {
	event := map[string]interface{}{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	log.Printf("[EVENT] %s", eventType)

	return p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *EventPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
