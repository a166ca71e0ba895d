package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devfoliohq/devfolio/internal/config"
)

func TestRegistry_FixedOrder(t *testing.T) {
	providers := Registry(&config.Config{})

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}

	assert.Equal(t, []string{
		"github", "gitlab", "npm", "pypi", "dockerhub", "huggingface", "packagist",
	}, names)
}
