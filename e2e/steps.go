package e2e

import (
	"github.com/cucumber/godog"

	"pushgraph/e2e/steps/common"
	"pushgraph/e2e/steps/subscription"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (session, generic response assertions)
	common.RegisterSteps(ctx, tc)

	// Register subscription and notification steps
	subscription.RegisterSteps(ctx, tc)
}
