// events.go
//
// A construction materials catalog service: stores, brands, items, inventory and material attributes
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of materials-catalog.
// materials-catalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// materials-catalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with materials-catalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/segmentio/kafka-go"
)

// Event announces one committed catalog change
type Event struct {
	ID     string      `json:"id"`
	Action string      `json:"action"`
	Kind   models.Kind `json:"kind"`
	Entity uint64      `json:"entity_id"`
	Path   string      `json:"path"`
	Label  string      `json:"label"`
	Time   time.Time   `json:"time"`
}

// NewEvent stamps an event with a fresh id and the current time
func NewEvent(action string, kind models.Kind, id uint64, label string) Event {
	return Event{
		ID:     uuid.NewString(),
		Action: action,
		Kind:   kind,
		Entity: id,
		Path:   models.EntityPath(kind, id),
		Label:  label,
		Time:   time.Now().UTC(),
	}
}

// Publisher delivers change events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop drops events; used when no brokers are configured
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// KafkaPublisher writes events to a kafka topic keyed by entity path
type KafkaPublisher struct {
	writer *kafka.Writer
}

// New returns a KafkaPublisher when KAFKA_BROKERS is set and a Noop otherwise
func New(cfg *config.Config) Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return Noop{}
	}
	log.Printf("Publishing catalog changes to kafka topic %s via %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		},
	}
}

// Publish writes one event
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Path),
		Value: payload,
		Time:  event.Time,
	})
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
