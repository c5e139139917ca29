// This file contains the background consumer that listens to the
// reservation.events queue and appends each event to
// logs/reservation.log in a single-line, human-friendly format.
package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// StartEventConsumer connects to RabbitMQ, declares the durable
// reservation.events queue and consumes messages forever.  It runs a
// reconnect loop with exponential backoff; processing errors are
// logged and the offending message rejected without requeue so the
// server keeps operating.
func StartEventConsumer() error {
    url := brokerURL()

    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("event-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn); err != nil {
            log.Printf("event-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("event-consumer: set QoS failed: %v", err)
    }

    if _, err := ch.QueueDeclare(eventQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(eventQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body); err != nil {
            log.Printf("event-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
    var env Envelope
    if err := json.Unmarshal(body, &env); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "reservation.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    ev := env.Payload
    line := fmt.Sprintf("[%s] %s | event_id=%s | reservation_id=%d | user_id=%d | room_id=%d | seat_id=%d | window=[%s, %s)",
        env.OccurredAt, env.Type, env.EventID, ev.ReservationID, ev.UserID, ev.RoomID, ev.SeatID, ev.StartTime, ev.EndTime)
    if ev.CheckInStatus != "" {
        line += " | attendance=" + ev.CheckInStatus
    }
    line += "\n"

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
