package main

import (
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inesp/bitbucket-pr-reminder/services"
)

func main() {
	prID := flag.Int("pr", 0, "PR ID. Generate a message for this PR only.")
	users := flag.String("users", "", "Comma separated usernames. Only process PRs authored by them.")
	limit := flag.Int("limit", 1000, "Limit to only this many PRs.")
	flag.Parse()

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	cfg, err := services.LoadConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	opts := services.RunOptions{PRID: *prID, Limit: *limit}
	for _, name := range strings.Split(*users, ",") {
		if name = strings.TrimSpace(name); name != "" {
			opts.Users = append(opts.Users, name)
		}
	}

	reminder := services.NewReminder(cfg, services.NewBitbucketClient(cfg))
	if err := reminder.Run(opts); err != nil {
		logrus.Fatal(err)
	}
}
