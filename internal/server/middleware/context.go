package middleware

import (
	"github.com/yppgo/patentgraph/internal/util"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/yppgo/patentgraph/pkg/ai"
	oai "github.com/yppgo/patentgraph/pkg/ai/ollama"
	gai "github.com/yppgo/patentgraph/pkg/ai/openai"
	"github.com/yppgo/patentgraph/pkg/logger"
	neo4jstore "github.com/yppgo/patentgraph/pkg/store/neo4j"
)

type App struct {
	Queue        *amqp091.Channel
	S3           *s3.Client
	AiClient     ai.Client
	Store        *neo4jstore.Store
	OntologyPath string
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(
	queue *amqp091.Channel,
	s3 *s3.Client,
	graphStore *neo4jstore.Store,
	ontologyPath string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
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
					logger.Fatal("Failed to create Ollama client", "err", err)
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

			app := &App{
				Queue:        queue,
				S3:           s3,
				AiClient:     aiClient,
				Store:        graphStore,
				OntologyPath: ontologyPath,
			}
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
