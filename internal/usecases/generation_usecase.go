package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/domain/errors"
	domainRepos "contract-hub.backend/internal/domain/repositories"
	"contract-hub.backend/pkg/logger"
	"contract-hub.backend/pkg/utils"
)

// GenerationUsecase produces contract content from templates. Generation is
// deterministic substitution, so results are cached by input fingerprint;
// the async path exists to mirror a slow provider behind the same API shape.
type GenerationUsecase struct {
	contractRepo domainRepos.ContractRepository
	jobRepo      domainRepos.GenerationJobRepository
	cacheRepo    domainRepos.GenerationCacheRepository
	contractUC   *ContractUsecase

	jobDelay time.Duration
}

func NewGenerationUsecase(
	contractRepo domainRepos.ContractRepository,
	jobRepo domainRepos.GenerationJobRepository,
	cacheRepo domainRepos.GenerationCacheRepository,
	contractUC *ContractUsecase,
	jobDelay time.Duration,
) *GenerationUsecase {
	return &GenerationUsecase{
		contractRepo: contractRepo,
		jobRepo:      jobRepo,
		cacheRepo:    cacheRepo,
		contractUC:   contractUC,
		jobDelay:     jobDelay,
	}
}

func (uc *GenerationUsecase) checkOwnership(ctx context.Context, contractID uuid.UUID, actor entities.CurrentUser) (*entities.Contract, error) {
	contract, err := uc.contractRepo.GetByID(ctx, contractID, false)
	if err != nil {
		return nil, errors.NotFound("contract not found")
	}
	if contract.OwnerUserID != actor.ID {
		return nil, errors.Forbidden("you do not have access to this contract")
	}
	return contract, nil
}

// Generate renders content synchronously and applies it to the contract as
// an AI snapshot. Cache hits skip rendering but still apply the content.
func (uc *GenerationUsecase) Generate(ctx context.Context, actor entities.CurrentUser, input entities.GenerateInput) (*entities.GenerateResult, error) {
	if _, err := uc.checkOwnership(ctx, input.ContractID, actor); err != nil {
		return nil, err
	}

	key := generationCacheKey(input.ContractType, input.Inputs)

	content, hit, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	if !hit {
		content, err = RenderBody(input.ContractType, input.Inputs)
		if err != nil {
			return nil, err
		}
		if err := uc.cacheRepo.Put(ctx, key, content); err != nil {
			return nil, errors.InternalError(err)
		}
	}

	if _, err := uc.contractUC.UpdateContent(ctx, actor, input.ContractID, entities.UpdateContentInput{
		Content: content,
		Source:  entities.VersionSourceAI,
	}); err != nil {
		return nil, err
	}

	return &entities.GenerateResult{Content: content, Cached: hit, CacheKey: key}, nil
}

// GenerateAsync records a job and processes it in the background. Clients
// poll the job by id.
func (uc *GenerationUsecase) GenerateAsync(ctx context.Context, actor entities.CurrentUser, input entities.GenerateInput) (*entities.GenerationJob, error) {
	if _, err := uc.checkOwnership(ctx, input.ContractID, actor); err != nil {
		return nil, err
	}

	job := &entities.GenerationJob{
		ID:           utils.GenerateUUIDv7(),
		ContractID:   input.ContractID,
		OwnerUserID:  actor.ID,
		ContractType: input.ContractType,
		Inputs:       input.Inputs,
		Status:       entities.JobStatusPending,
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, errors.InternalError(err)
	}

	go uc.processJob(context.Background(), actor, job.ID, input)

	return job, nil
}

// processJob runs detached from the request. Failures land on the job row,
// never on the caller.
func (uc *GenerationUsecase) processJob(ctx context.Context, actor entities.CurrentUser, jobID uuid.UUID, input entities.GenerateInput) {
	if err := uc.jobRepo.MarkProcessing(ctx, jobID); err != nil {
		logger.Error(ctx, "generation job: mark processing failed",
			zap.String("job_id", jobID.String()), zap.Error(err))
		return
	}

	// Simulated provider latency.
	time.Sleep(uc.jobDelay)

	key := generationCacheKey(input.ContractType, input.Inputs)
	content, hit, err := uc.cacheRepo.Get(ctx, key)
	if err == nil && !hit {
		content, err = RenderBody(input.ContractType, input.Inputs)
		if err == nil {
			err = uc.cacheRepo.Put(ctx, key, content)
		}
	}
	if err != nil {
		_ = uc.jobRepo.MarkFailed(ctx, jobID, err.Error())
		return
	}

	if _, err := uc.contractUC.UpdateContent(ctx, actor, input.ContractID, entities.UpdateContentInput{
		Content: content,
		Source:  entities.VersionSourceAI,
	}); err != nil {
		_ = uc.jobRepo.MarkFailed(ctx, jobID, err.Error())
		return
	}

	if err := uc.jobRepo.MarkCompleted(ctx, jobID, content); err != nil {
		logger.Error(ctx, "generation job: mark completed failed",
			zap.String("job_id", jobID.String()), zap.Error(err))
	}
}

// GetJob returns a job for polling; jobs are private to their owner.
func (uc *GenerationUsecase) GetJob(ctx context.Context, actor entities.CurrentUser, jobID uuid.UUID) (*entities.GenerationJob, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, errors.NotFound("generation job not found")
	}
	if job.OwnerUserID != actor.ID {
		return nil, errors.Forbidden("you do not have access to this job")
	}
	return job, nil
}
