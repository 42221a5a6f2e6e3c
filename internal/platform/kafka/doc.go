// Package kafka streams task registry changes over Kafka. The API server
// publishes a domain.TaskEvent for every accepted create, toggle and delete;
// cmd/task-events consumes the topic and logs each event.
package kafka
