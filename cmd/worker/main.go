package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yppgo/patentgraph/internal/queue"
	"github.com/yppgo/patentgraph/internal/storage"
	"github.com/yppgo/patentgraph/internal/util"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yppgo/patentgraph/pkg/ai"
	oai "github.com/yppgo/patentgraph/pkg/ai/ollama"
	gai "github.com/yppgo/patentgraph/pkg/ai/openai"
	"github.com/yppgo/patentgraph/pkg/downloader"
	"github.com/yppgo/patentgraph/pkg/logger"
	"github.com/yppgo/patentgraph/pkg/logger/console"
	neo4jstore "github.com/yppgo/patentgraph/pkg/store/neo4j"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleBackend := console.NewConsoleBackend(console.ConsoleBackendParams{
		Debug: debug,
	})
	logger.Init(consoleBackend)

	// Init s3 client for the PDF archive
	s3Client := storage.NewS3Client(ctx)

	// AI client
	adapter := util.GetEnv("AI_ADAPTER")
	var aiClient ai.Client

	switch adapter {
	case "ollama":
		client, err := oai.NewExtractorClient(oai.NewExtractorClientParams{
			ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),
			PlanningModel:   util.GetEnv("AI_PLAN_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		aiClient = client
	default:
		aiClient = gai.NewExtractorClient(gai.NewExtractorClientParams{
			ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),
			PlanningModel:   util.GetEnv("AI_PLAN_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}

	// Init neo4j store
	graphStore, err := neo4jstore.NewStore(ctx, neo4jstore.NewStoreParams{
		URI:      util.GetEnv("NEO4J_URI"),
		User:     util.GetEnv("NEO4J_USER"),
		Password: util.GetEnv("NEO4J_PASSWORD"),
	})
	if err != nil {
		logger.Fatal("Unable to connect to neo4j", "err", err)
	}
	defer graphStore.Close(context.Background())

	// PDF downloader
	downloadTimeout := time.Duration(util.GetEnvNumeric("DOWNLOAD_TIMEOUT_SECONDS", 30)) * time.Second
	dl := downloader.NewDownloader(downloader.NewDownloaderParams{
		Timeout: downloadTimeout,
	})

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, queue.QueueNames); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	logger.Info("Listening for messages")

	// Single consumer channel with prefetch=1 so only one message is in
	// flight across all queues.
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	err = consumerCh.Qos(1, 0, true)
	if err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	type queuedMessage struct {
		msg       amqp.Delivery
		queueName string
	}

	messageChan := make(chan queuedMessage)

	for _, queueName := range queue.QueueNames {
		go func(qName string) {
			consumerTag := fmt.Sprintf("%s_consumer", qName)
			msgs, err := consumerCh.Consume(
				qName,
				consumerTag,
				false, // autoAck
				false, // exclusive
				false, // noLocal
				false, // noWait
				nil,   // args
			)
			if err != nil {
				logger.Fatal("Failed to start consuming", "queue", qName, "err", err)
			}

			for {
				select {
				case <-ctx.Done():
					logger.Info("Stopping consumer", "queue", qName)
					return
				case msg, ok := <-msgs:
					if !ok {
						logger.Info("Message channel closed", "queue", qName)
						return
					}
					messageChan <- queuedMessage{msg: msg, queueName: qName}
				}
			}
		}(queueName)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case qm := <-messageChan:
				startTime := time.Now()
				logger.Info("Received message", "queue", qm.queueName)

				var processingErr error
				switch qm.queueName {
				case queue.ImportQueue:
					processingErr = queue.ProcessImportMessage(ctx, graphStore, string(qm.msg.Body))
				case queue.DownloadQueue:
					processingErr = queue.ProcessDownloadMessage(ctx, dl, s3Client, string(qm.msg.Body))
				case queue.ExtractQueue:
					processingErr = queue.ProcessExtractMessage(ctx, aiClient, string(qm.msg.Body))
				}

				// If there was an error send to retry or dead-letter, otherwise ack the message
				if processingErr != nil {
					logger.Error("Error processing message", "queue", qm.queueName, "err", processingErr)
					handleProcessingError(consumerCh, qm.msg, qm.queueName)
				} else {
					err = qm.msg.Ack(false)
					if err != nil {
						logger.Error("Failed to ack message", "err", err)
					}
					logger.Info("Message processed successfully", "queue", qm.queueName)
				}

				metrics := aiClient.GetMetrics()
				aiDuration := time.Duration(metrics.DurationMs) * time.Millisecond
				aiHours := int(aiDuration.Hours())
				aiMinutes := int(aiDuration.Minutes()) % 60
				aiSeconds := int(aiDuration.Seconds()) % 60
				logger.Info(
					"AI Metrics",
					"input_tokens", metrics.InputTokens,
					"output_tokens", metrics.OutputTokens,
					"total_tokens", metrics.TotalTokens,
					"duration", fmt.Sprintf("%02d:%02d:%02d", aiHours, aiMinutes, aiSeconds),
				)

				processingDuration := time.Since(startTime)
				hours := int(processingDuration.Hours())
				minutes := int(processingDuration.Minutes()) % 60
				seconds := int(processingDuration.Seconds()) % 60
				logger.Info(
					"Processing time",
					"duration", fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds),
				)
				logger.Info("Waiting for next message")
				aiClient.ResetMetrics()
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}

func handleProcessingError(ch *amqp.Channel, msg amqp.Delivery, queueName string) {
	retries := 0
	if val, ok := msg.Headers["x-retries"]; ok {
		if v, ok := val.(int32); ok {
			retries = int(v)
		}
	}

	// If message has been retried 10 times, send to dead-letter
	if retries >= 10 {
		dlqName := queueName + "_dlq"
		logger.Info("Sending message to DLQ", "dlq", dlqName)
		pubErr := ch.Publish(
			"",
			dlqName,
			false,
			false,
			amqp.Publishing{
				ContentType: "text/plain",
				Body:        msg.Body,
				Headers:     msg.Headers,
			},
		)
		if pubErr != nil {
			logger.Error("Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			msg.Nack(false, true)
			return
		}
		msg.Ack(false)
		return
	}

	retryName := queueName + "_retry"
	headers := msg.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-retries"] = retries + 1

	pubErr := ch.Publish(
		"",
		retryName,
		false,
		false,
		amqp.Publishing{
			ContentType: "text/plain",
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}
