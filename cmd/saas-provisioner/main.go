// Command saas-provisioner runs a single marketplace provisioning saga for a resource.
//
// Usage:
//
//	SAAS_ACCESS_TOKEN=... saas-provisioner --operation provision \
//	  --subscription 8a3c5e21-4f6b-4d7e-9a0b-1c2d3e4f5a6b \
//	  --resource-id /subscriptions/8a3c5e21-4f6b-4d7e-9a0b-1c2d3e4f5a6b/resourceGroups/rg/providers/Microsoft.Datadog/monitors/m \
//	  --publisher datadog1591740804488 --offer datadog-saas --plan payg --subscription-level
//
// Any configuration entry can be set using environment variables prefixed with `SAAS_` (see provisioning.ServiceConfiguration).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/config"
	"github.com/marketplace-rp/saasprovisioning/logs"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
	"github.com/marketplace-rp/saasprovisioning/marketplace/client"
	"github.com/marketplace-rp/saasprovisioning/provisioning"
	"github.com/marketplace-rp/saasprovisioning/transaction/saga"
)

const (
	operationProvision   = "provision"
	operationDeprovision = "deprovision"
	operationUpdate      = "update"
	accessTokenEnvVar    = "SAAS_ACCESS_TOKEN"
)

type arguments struct {
	operation               string
	subscriptionID          string
	tenantID                string
	resourceID              string
	apiVersion              string
	publisherID             string
	offerID                 string
	planID                  string
	termID                  string
	quantity                int
	subscriptionLevel       bool
	marketplaceSubscription string
	currentPlanID           string
}

func newFlagSet(args *arguments) *pflag.FlagSet {
	flags := pflag.NewFlagSet("saas-provisioner", pflag.ContinueOnError)
	flags.StringVar(&args.operation, "operation", operationProvision, "saga to run: provision, deprovision or update")
	flags.StringVar(&args.subscriptionID, "subscription", "", "Azure subscription of the resource")
	flags.StringVar(&args.tenantID, "tenant", "", "tenant of the resource")
	flags.StringVar(&args.resourceID, "resource-id", "", "ARM identifier of the resource")
	flags.StringVar(&args.apiVersion, "api-version", "", "API version of the control-plane request")
	flags.StringVar(&args.publisherID, "publisher", "", "marketplace publisher")
	flags.StringVar(&args.offerID, "offer", "", "marketplace offer")
	flags.StringVar(&args.planID, "plan", "", "marketplace plan")
	flags.StringVar(&args.termID, "term", "", "marketplace term")
	flags.IntVar(&args.quantity, "quantity", 0, "number of seats (per-seat plans only)")
	flags.BoolVar(&args.subscriptionLevel, "subscription-level", false, "whether the SaaS resource is scoped to the Azure subscription")
	flags.StringVar(&args.marketplaceSubscription, "marketplace-subscription", "", "existing marketplace subscription (deprovision and update only)")
	flags.StringVar(&args.currentPlanID, "current-plan", "", "plan the existing marketplace subscription is on (update only)")
	flags.String("log-level", "info", "minimum level logged")
	flags.String("log-format", logs.FormatJSON, "log format: json or console")
	return flags
}

// request converts the arguments into the workflow context and resource a saga acts upon.
func (a *arguments) request() (wc marketplace.WorkflowContext, resource marketplace.BaseResource, err error) {
	wc, err = marketplace.NewWorkflowContext(a.subscriptionID, a.tenantID, a.resourceID, a.apiVersion, marketplace.RequestMetadata{})
	if err != nil {
		return
	}
	id, err := marketplace.ParseResourceID(a.resourceID)
	if err != nil {
		return
	}
	resource = marketplace.BaseResource{
		ID:   a.resourceID,
		Name: id.Name,
		Type: id.ResourceType.String(),
		Plan: &marketplace.ResourcePlan{
			PlanID:      a.planID,
			OfferID:     a.offerID,
			PublisherID: a.publisherID,
			TermID:      a.termID,
			AutoRenew:   true,
		},
	}
	if a.quantity > 0 {
		quantity := a.quantity
		resource.Plan.Quantity = &quantity
	}
	wc.Marketplace.IsSubscriptionLevel = a.subscriptionLevel
	switch a.operation {
	case operationProvision:
	case operationDeprovision, operationUpdate:
		if a.marketplaceSubscription == "" {
			err = commonerrors.Newf(commonerrors.ErrUndefined, "a marketplace subscription must be provided to %v a resource", a.operation)
			return
		}
		wc = wc.WithMarketplaceSubscription(marketplace.MarketplaceSubscription{ID: a.marketplaceSubscription, Name: id.Name})
		wc.Marketplace.PlanID = a.currentPlanID
	default:
		err = commonerrors.Newf(commonerrors.ErrInvalid, "unsupported operation %q", a.operation)
	}
	return
}

func loadConfiguration(flags *pflag.FlagSet) (*provisioning.ServiceConfiguration, error) {
	session := viper.New()
	err := config.BindFlagToEnv(session, provisioning.EnvVarPrefix, "SAAS_LOG_LEVEL", flags.Lookup("log-level"))
	if err != nil {
		return nil, err
	}
	err = config.BindFlagToEnv(session, provisioning.EnvVarPrefix, "SAAS_LOG_FORMAT", flags.Lookup("log-format"))
	if err != nil {
		return nil, err
	}
	cfg := &provisioning.ServiceConfiguration{}
	err = config.LoadFromViper(session, provisioning.EnvVarPrefix, cfg, provisioning.DefaultServiceConfiguration())
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func execute(ctx context.Context, svc *provisioning.Service, operation string, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, *saga.Report, error) {
	switch operation {
	case operationDeprovision:
		return svc.Deprovision(ctx, wc, resource)
	case operationUpdate:
		return svc.UpdatePlan(ctx, wc, resource)
	default:
		return svc.Provision(ctx, wc, resource)
	}
}

func run(ctx context.Context, rawArgs []string) (err error) {
	args := &arguments{}
	flags := newFlagSet(args)
	err = flags.Parse(rawArgs)
	if err != nil {
		return
	}
	cfg, err := loadConfiguration(flags)
	if err != nil {
		return
	}
	logger, flush, err := logs.NewLogger(&cfg.Logging)
	if err != nil {
		return
	}
	defer func() { _ = flush() }()

	wc, resource, err := args.request()
	if err != nil {
		logger.Error(err, "invalid request")
		return
	}
	token := os.Getenv(accessTokenEnvVar)
	if token == "" {
		err = commonerrors.Newf(commonerrors.ErrUndefined, "an access token must be provided using %v", accessTokenEnvVar)
		logger.Error(err, "missing credentials")
		return
	}
	clients, err := client.NewClients(&cfg.Marketplace, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), logger)
	if err != nil {
		logger.Error(err, "could not create marketplace clients")
		return
	}
	defer func() { _ = clients.Close() }()
	svc, err := provisioning.NewService(cfg, provisioning.CollaboratorsFromClients(clients), logger)
	if err != nil {
		logger.Error(err, "could not create provisioning service")
		return
	}
	result, report, err := execute(ctx, svc, args.operation, wc, resource)
	logOutcome(logger, args.operation, result, report, err)
	return
}

func logOutcome(logger logr.Logger, operation string, wc marketplace.WorkflowContext, report *saga.Report, err error) {
	values := append(wc.LogValues(),
		"operation", operation,
		"report", report.String(),
		"activated", wc.SaaSActivationStatus(),
		"deleted", wc.IsSaaSDeleted(),
	)
	if err != nil {
		logger.Error(err, "saga failed", values...)
		return
	}
	logger.Info("saga completed", values...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
