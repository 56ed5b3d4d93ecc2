package provisioning

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
	"github.com/marketplace-rp/saasprovisioning/marketplace/client"
	"github.com/marketplace-rp/saasprovisioning/parallelisation"
	"github.com/marketplace-rp/saasprovisioning/transaction/saga"
)

// Request describes a saga to run on a resource.
type Request struct {
	Context  marketplace.WorkflowContext
	Resource marketplace.BaseResource
}

// Result is the outcome of a saga run on behalf of a Request.
type Result struct {
	Context marketplace.WorkflowContext
	Report  *saga.Report
	Err     error
}

// Service runs provisioning sagas. Sagas on different resources may run concurrently.
type Service struct {
	cfg      *ServiceConfiguration
	create   *CreateSaaS
	activate *ActivateSaaS
	delete   *DeleteSaaS
	update   *UpdateSaaS
	logger   logr.Logger
}

// CollaboratorsFromClients returns the collaborators backed by the marketplace HTTP clients.
func CollaboratorsFromClients(clients *client.Clients) Collaborators {
	if clients == nil {
		return Collaborators{}
	}
	return Collaborators{
		Fulfillment: clients.Fulfillment,
		ARM:         clients.ARM,
		Agreements:  clients.Agreement,
	}
}

// NewService returns a provisioning service. Unless collaborators define one, the ignore list is the one configured.
func NewService(cfg *ServiceConfiguration, collaborators Collaborators, logger logr.Logger) (*Service, error) {
	if cfg == nil {
		return nil, commonerrors.UndefinedParameter("service configuration")
	}
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	if collaborators.IgnoreList == nil {
		collaborators.IgnoreList = marketplace.NewStaticIgnoreList(cfg.IgnoredSubscriptions...)
	}
	deps := &StepDependencies{
		Collaborators: collaborators,
		RetryPolicy:   &cfg.StepRetryPolicy,
		Logger:        logger.WithName("step"),
	}
	s := &Service{cfg: cfg, logger: logger}
	s.create, err = NewCreateSaaS(deps)
	if err != nil {
		return nil, err
	}
	s.activate, err = NewActivateSaaS(deps)
	if err != nil {
		return nil, err
	}
	s.delete, err = NewDeleteSaaS(deps)
	if err != nil {
		return nil, err
	}
	s.update, err = NewUpdateSaaS(deps)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ProvisioningPipeline creates then activates the marketplace subscription of a resource.
func (s *Service) ProvisioningPipeline() []Step {
	return []Step{s.create, s.activate}
}

// DeprovisioningPipeline deletes the marketplace subscription of a resource.
func (s *Service) DeprovisioningPipeline() []Step {
	return []Step{s.delete}
}

// UpdatePipeline moves the marketplace subscription of a resource to the plan of the resource.
func (s *Service) UpdatePipeline() []Step {
	return []Step{s.update}
}

func (s *Service) newOrchestrator(steps []Step) *saga.Orchestrator[marketplace.WorkflowContext, marketplace.BaseResource] {
	opts := []saga.Option{
		saga.WithLogger(s.logger.WithName("saga")),
		saga.WithCompensationTimeout(s.cfg.CompensationTimeout),
	}
	if s.cfg.DeferCompensationOnRetryableFailure {
		opts = append(opts, saga.DeferCompensationOnRetryableFailure())
	}
	return saga.NewOrchestratorWithSteps(steps, opts...)
}

func (s *Service) run(ctx context.Context, operation string, steps []Step, start int, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, *saga.Report, error) {
	logger := s.logger.WithValues(wc.LogValues()...).WithValues("operation", operation)
	err := wc.Validate()
	if err != nil {
		logger.Error(err, "invalid workflow context")
		return wc, nil, err
	}
	logger.V(1).Info("starting saga", "start", start)
	result, report, err := s.newOrchestrator(steps).ExecuteFrom(ctx, start, wc, resource)
	if err != nil {
		switch {
		case report == nil:
			logger.Error(err, "saga could not start")
		case !report.Status.IsTerminal():
			logger.Error(err, "saga interrupted", "status", report.Status, "resumeIndex", report.ResumeIndex())
		default:
			logger.Error(err, "saga failed", "status", report.Status, "compensationErrors", report.CompensationErrors())
		}
		return result, report, err
	}
	logger.Info("saga completed")
	return result, report, nil
}

// Provision creates and activates the marketplace subscription of a resource.
func (s *Service) Provision(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, *saga.Report, error) {
	return s.run(ctx, "provision", s.ProvisioningPipeline(), 0, wc, resource)
}

// ResumeProvisioning carries on with a provisioning saga interrupted by a retryable failure (see saga.Report.ResumeIndex).
func (s *Service) ResumeProvisioning(ctx context.Context, start int, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, *saga.Report, error) {
	return s.run(ctx, "provision", s.ProvisioningPipeline(), start, wc, resource)
}

// Deprovision deletes the marketplace subscription referenced by the context.
func (s *Service) Deprovision(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, *saga.Report, error) {
	return s.run(ctx, "deprovision", s.DeprovisioningPipeline(), 0, wc, resource)
}

// UpdatePlan moves the marketplace subscription referenced by the context to the plan of the resource.
func (s *Service) UpdatePlan(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, *saga.Report, error) {
	return s.run(ctx, "update", s.UpdatePipeline(), 0, wc, resource)
}

// DeprovisionAll deprovisions resources concurrently. Every saga is independent: a failure does not stop the others.
// Results are returned in the order of requests alongside all the failures.
func (s *Service) DeprovisionAll(ctx context.Context, requests []Request) ([]Result, error) {
	results := make([]Result, len(requests))
	group := parallelisation.NewExecutionGroup[int](func(ctx context.Context, i int) error {
		wc, report, err := s.Deprovision(ctx, requests[i].Context, requests[i].Resource)
		results[i] = Result{Context: wc, Report: report, Err: err}
		return err
	}, parallelisation.Workers(s.cfg.MaxConcurrentSagas), parallelisation.JoinErrors)
	for i := range requests {
		results[i].Context = requests[i].Context
		group.RegisterFunction(i)
	}
	err := group.Execute(ctx)
	if ctxErr := parallelisation.DetermineContextError(ctx); ctxErr != nil {
		for i := range results {
			if results[i].Report == nil && results[i].Err == nil {
				results[i].Err = ctxErr
			}
		}
	}
	return results, err
}
