package awsclient_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyinventory/internal/pkg/awsclient"
)

func TestLoadAWSConfig_DefaultRegion(t *testing.T) {
	t.Setenv("AWS_REGION", "")

	cfg, err := awsclient.LoadAWSConfig(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, awsclient.DefaultRegion, cfg.Region)
}

func TestLoadAWSConfig_ExplicitRegion(t *testing.T) {
	cfg, err := awsclient.LoadAWSConfig(context.Background(), "sa-east-1")
	require.NoError(t, err)
	assert.Equal(t, "sa-east-1", cfg.Region)
}

func TestNewDynamoDBClient_WithEndpointOverride(t *testing.T) {
	cfg, err := awsclient.LoadAWSConfig(context.Background(), "us-east-1")
	require.NoError(t, err)

	client := awsclient.NewDynamoDBClient(cfg, "http://localhost:8000")
	require.NotNil(t, client)

	var api awsclient.DynamoDBAPI = client
	assert.NotNil(t, api)
	assert.Equal(t, "http://localhost:8000", *client.Options().BaseEndpoint)
}
