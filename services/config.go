package services

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything one run needs: Bitbucket access, the Slack webhook
// and the username mapping. Built once in main and passed into each component.
type Config struct {
	BitbucketAPIRepoLink string `env:"BITBUCKET_API_REPO_LINK,required,notEmpty"`
	BitbucketRepoLink    string `env:"BITBUCKET_REPO_LINK,required,notEmpty"`
	BitbucketUsername    string `env:"BITBUCKET_USERNAME,required,notEmpty"`
	BitbucketToken       string `env:"BITBUCKET_TOKEN,required,notEmpty"`
	SlackWebhookURL      string `env:"SLACK_WEBHOOK_URL,required,notEmpty"`
	RawUserMap           string `env:"USER_MAP"`

	// Bitbucket username -> Slack username, parsed from RawUserMap.
	UserMap map[string]string
}

// LoadConfig reads the environment (plus an optional .env file) into a Config.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}

	cfg.BitbucketAPIRepoLink = strings.TrimRight(cfg.BitbucketAPIRepoLink, "/")
	cfg.BitbucketRepoLink = strings.TrimRight(cfg.BitbucketRepoLink, "/")
	cfg.UserMap = parseUserMap(cfg.RawUserMap)

	return cfg, nil
}

// parseUserMap reads "bitbucketname=slackname" pairs separated by commas.
// Pairs without a "=" are skipped.
func parseUserMap(raw string) map[string]string {
	userMap := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		bitbucketName, slackName, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || bitbucketName == "" || slackName == "" {
			continue
		}
		userMap[bitbucketName] = slackName
	}

	return userMap
}

// PROverviewLink is the browser link of a PR.
func (c *Config) PROverviewLink(prID int) string {
	return fmt.Sprintf("%s/pull-requests/%d/overview", c.BitbucketRepoLink, prID)
}
