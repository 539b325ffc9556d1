//go:build integration
// +build integration

package tests

import (
	"context"
	"os"
	"strings"
	"time"

	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type IntegrationSuiteBase struct {
	suite.Suite

	Client       *mongo.Client
	Collection   *mongo.Collection
	testDBName   string
	setupTimeout time.Duration
}

func (s *IntegrationSuiteBase) SetupSuite() {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "../../../../pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	s.setupTimeout = 5 * time.Second
	uri := envOrDefault("MONGO_URL", "mongodb://localhost:27017")
	database := envOrDefault("MONGO_TEST_DATABASE", envOrDefault("MONGO_DATABASE", "taskboard")+"_test")

	ctx, cancel := context.WithTimeout(context.Background(), s.setupTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mongo: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		s.T().Skipf("skipping integration suite: could not ping mongo: %v", err)
	}

	s.Client = client
	s.testDBName = database
	s.Collection = client.Database(database).Collection("tasks")
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.Client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.setupTimeout)
	defer cancel()

	// Drop the test database to keep the local environment clean after integration runs.
	if strings.HasSuffix(s.testDBName, "_test") {
		s.Require().NoError(s.Client.Database(s.testDBName).Drop(ctx))
	}
	s.Require().NoError(s.Client.Disconnect(ctx))
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), s.setupTimeout)
	defer cancel()
	s.Require().NoError(s.Collection.Drop(ctx))
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
