package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/domain/errors"
	domainRepos "contract-hub.backend/internal/domain/repositories"
	"contract-hub.backend/pkg/logger"
	"contract-hub.backend/pkg/utils"
)

// statusTransitions is the contract state machine. Absent keys and absent
// targets are both invalid; SIGNED, CANCELLED and EXPIRED have no exits.
var statusTransitions = map[entities.ContractStatus][]entities.ContractStatus{
	entities.ContractStatusDraft:     {entities.ContractStatusGenerated, entities.ContractStatusCancelled},
	entities.ContractStatusGenerated: {entities.ContractStatusDraft, entities.ContractStatusSigning, entities.ContractStatusCancelled},
	entities.ContractStatusSigning:   {entities.ContractStatusSigned, entities.ContractStatusCancelled, entities.ContractStatusExpired},
	entities.ContractStatusSigned:    {},
	entities.ContractStatusCancelled: {},
	entities.ContractStatusExpired:   {},
}

func transitionAllowed(from, to entities.ContractStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ContractUsecase is the lifecycle controller: every mutating contract
// operation goes through here so the activity trail is always written in the
// same transaction as the mutation it records.
type ContractUsecase struct {
	contractRepo  domainRepos.ContractRepository
	versionRepo   domainRepos.ContractVersionRepository
	partyRepo     domainRepos.ContractPartyRepository
	activityRepo  domainRepos.ActivityLogRepository
	signatureRepo domainRepos.SignatureRepository
	uow           domainRepos.UnitOfWork
}

func NewContractUsecase(
	contractRepo domainRepos.ContractRepository,
	versionRepo domainRepos.ContractVersionRepository,
	partyRepo domainRepos.ContractPartyRepository,
	activityRepo domainRepos.ActivityLogRepository,
	signatureRepo domainRepos.SignatureRepository,
	uow domainRepos.UnitOfWork,
) *ContractUsecase {
	return &ContractUsecase{
		contractRepo:  contractRepo,
		versionRepo:   versionRepo,
		partyRepo:     partyRepo,
		activityRepo:  activityRepo,
		signatureRepo: signatureRepo,
		uow:           uow,
	}
}

// loadOwned fetches a live contract and enforces the ownership gate shared by
// every read and write path.
func (uc *ContractUsecase) loadOwned(ctx context.Context, id uuid.UUID, actor entities.CurrentUser) (*entities.Contract, error) {
	contract, err := uc.contractRepo.GetByID(ctx, id, false)
	if err != nil {
		return nil, errors.NotFound("contract not found")
	}
	if contract.OwnerUserID != actor.ID {
		return nil, errors.Forbidden("you do not have access to this contract")
	}
	return contract, nil
}

func (uc *ContractUsecase) Create(ctx context.Context, actor entities.CurrentUser, input entities.CreateContractInput) (*entities.Contract, error) {
	if len(strings.TrimSpace(input.Title)) < 3 {
		return nil, errors.Validation("title must be at least 3 characters")
	}

	contract := &entities.Contract{
		ID:           utils.GenerateUUIDv7(),
		Title:        strings.TrimSpace(input.Title),
		ContractType: input.ContractType,
		TemplateID:   input.TemplateID,
		OwnerUserID:  actor.ID,
		Status:       entities.ContractStatusDraft,
	}

	err := uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.contractRepo.Create(txCtx, contract); err != nil {
			return err
		}
		return uc.activityRepo.Create(txCtx, &entities.ActivityLog{
			ContractID: contract.ID,
			Action:     entities.ActivityCreated,
			UserID:     actor.ID,
			UserName:   actor.DisplayName(),
			Details:    map[string]interface{}{"title": contract.Title},
		})
	})
	if err != nil {
		return nil, errors.InternalError(err)
	}

	logger.Info(ctx, "contract created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("owner_id", actor.ID.String()))
	return contract, nil
}

func (uc *ContractUsecase) Get(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) (*entities.ContractDetail, error) {
	contract, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	detail := &entities.ContractDetail{Contract: *contract}

	if latest, err := uc.versionRepo.GetLatest(ctx, id); err == nil {
		detail.Content = latest.Content
	}

	parties, err := uc.partyRepo.GetAll(ctx, id)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	detail.Parties = parties

	signatures, err := uc.signatureRepo.GetByContract(ctx, id)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	detail.Signature = signatures

	return detail, nil
}

func (uc *ContractUsecase) List(ctx context.Context, actor entities.CurrentUser, query entities.ContractListQuery) ([]*entities.Contract, int64, error) {
	params := utils.GetPaginationParams(query.Page, query.PageSize)
	query.Page = params.Page
	query.PageSize = params.Limit

	items, total, err := uc.contractRepo.List(ctx, actor.ID, query)
	if err != nil {
		return nil, 0, errors.InternalError(err)
	}
	return items, total, nil
}

func (uc *ContractUsecase) Update(ctx context.Context, actor entities.CurrentUser, id uuid.UUID, input entities.UpdateContractInput) (*entities.Contract, error) {
	contract, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	var changed []string
	patch := domainRepos.ContractPatch{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if len(title) < 3 {
			return nil, errors.Validation("title must be at least 3 characters")
		}
		patch.Title = &title
		contract.Title = title
		changed = append(changed, "title")
	}
	if input.Metadata != nil {
		patch.Metadata = input.Metadata
		contract.Metadata = input.Metadata
		changed = append(changed, "metadata")
	}
	if len(changed) == 0 {
		return contract, nil
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.contractRepo.Update(txCtx, id, patch); err != nil {
			return err
		}
		return uc.activityRepo.Create(txCtx, &entities.ActivityLog{
			ContractID: id,
			Action:     entities.ActivityUpdated,
			UserID:     actor.ID,
			UserName:   actor.DisplayName(),
			Details:    map[string]interface{}{"fields": changed},
		})
	})
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return contract, nil
}

// Delete soft-deletes. A fully signed contract is a legal record and cannot
// be removed.
func (uc *ContractUsecase) Delete(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) error {
	contract, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return err
	}
	if contract.Status == entities.ContractStatusSigned {
		return errors.Conflict("cannot delete a fully signed contract")
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.activityRepo.Create(txCtx, &entities.ActivityLog{
			ContractID: id,
			Action:     entities.ActivityUpdated,
			UserID:     actor.ID,
			UserName:   actor.DisplayName(),
			Details:    map[string]interface{}{"field": "deleted"},
		}); err != nil {
			return err
		}
		ok, err := uc.contractRepo.SoftDelete(txCtx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errors.NotFound("contract not found")
		}
		return nil
	})
	if err != nil {
		if _, isApp := errors.AsAppError(err); isApp {
			return err
		}
		return errors.InternalError(err)
	}

	logger.Info(ctx, "contract deleted", zap.String("contract_id", id.String()))
	return nil
}

// Duplicate creates a fresh DRAFT copy. The source's latest content becomes
// version 1 of the copy, authored by the actor with source USER; the source
// contract is untouched.
func (uc *ContractUsecase) Duplicate(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) (*entities.Contract, error) {
	source, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	copyContract := &entities.Contract{
		ID:           utils.GenerateUUIDv7(),
		Title:        source.Title + " (Copy)",
		ContractType: source.ContractType,
		TemplateID:   source.TemplateID,
		OwnerUserID:  actor.ID,
		Status:       entities.ContractStatusDraft,
		Metadata:     source.Metadata,
	}

	var content string
	if latest, err := uc.versionRepo.GetLatest(ctx, id); err == nil {
		content = latest.Content
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.contractRepo.Create(txCtx, copyContract); err != nil {
			return err
		}
		if content != "" {
			if _, err := uc.versionRepo.Append(txCtx, copyContract.ID, content, entities.VersionSourceUser, actor.ID); err != nil {
				return err
			}
		}
		return uc.activityRepo.Create(txCtx, &entities.ActivityLog{
			ContractID: copyContract.ID,
			Action:     entities.ActivityCreated,
			UserID:     actor.ID,
			UserName:   actor.DisplayName(),
			Details:    map[string]interface{}{"duplicatedFrom": id.String()},
		})
	})
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return copyContract, nil
}

func (uc *ContractUsecase) Stats(ctx context.Context, actor entities.CurrentUser) (*entities.ContractStats, error) {
	stats, err := uc.contractRepo.Stats(ctx, actor.ID)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return stats, nil
}

func (uc *ContractUsecase) Recent(ctx context.Context, actor entities.CurrentUser, limit int) ([]*entities.Contract, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	items, err := uc.contractRepo.Recent(ctx, actor.ID, limit)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return items, nil
}

func (uc *ContractUsecase) Pending(ctx context.Context, actor entities.CurrentUser) ([]*entities.Contract, error) {
	items, err := uc.contractRepo.Pending(ctx, actor.ID)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return items, nil
}

// GetTransitions returns the allowed next statuses. Pure read.
func (uc *ContractUsecase) GetTransitions(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]entities.ContractStatus, error) {
	contract, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	allowed := statusTransitions[contract.Status]
	out := make([]entities.ContractStatus, len(allowed))
	copy(out, allowed)
	return out, nil
}

// RequestTransition moves the contract through the state machine. The status
// write is a compare-and-swap on the previously observed status, so two
// concurrent requests from the same state cannot both win; the activity entry
// commits atomically with the status change.
func (uc *ContractUsecase) RequestTransition(ctx context.Context, actor entities.CurrentUser, id uuid.UUID, input entities.UpdateStatusInput) (*entities.Contract, error) {
	contract, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	next := input.Status
	if next == entities.ContractStatusCancelled && strings.TrimSpace(input.Reason) == "" {
		return nil, errors.Validation("a reason is required to cancel a contract")
	}
	if !transitionAllowed(contract.Status, next) {
		return nil, errors.InvalidTransition("transition not allowed").WithDetails(map[string]interface{}{
			"oldStatus": string(contract.Status),
			"newStatus": string(next),
		})
	}

	oldStatus := contract.Status
	setSignedAt := next == entities.ContractStatusSigned

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		ok, err := uc.contractRepo.UpdateStatusCAS(txCtx, id, oldStatus, next, setSignedAt)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Conflict("contract status changed concurrently")
		}

		action := entities.ActivityUpdated
		if next == entities.ContractStatusCancelled {
			action = entities.ActivityCancelled
		}
		details := map[string]interface{}{
			"oldStatus": string(oldStatus),
			"newStatus": string(next),
		}
		if input.Reason != "" {
			details["reason"] = input.Reason
		}
		return uc.activityRepo.Create(txCtx, &entities.ActivityLog{
			ContractID: id,
			Action:     action,
			UserID:     actor.ID,
			UserName:   actor.DisplayName(),
			Details:    details,
		})
	})
	if err != nil {
		if _, isApp := errors.AsAppError(err); isApp {
			return nil, err
		}
		return nil, errors.InternalError(err)
	}

	contract.Status = next
	if setSignedAt {
		updated, err := uc.contractRepo.GetByID(ctx, id, false)
		if err == nil {
			contract.SignedAt = updated.SignedAt
		}
	}

	logger.Info(ctx, "contract status changed",
		zap.String("contract_id", id.String()),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(next)))
	return contract, nil
}

// UpdateContent appends a content snapshot. Content is frozen once the
// contract reaches a terminal status. An AI snapshot on a DRAFT moves the
// contract to GENERATED in the same transaction.
func (uc *ContractUsecase) UpdateContent(ctx context.Context, actor entities.CurrentUser, id uuid.UUID, input entities.UpdateContentInput) (*entities.ContractVersion, error) {
	contract, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if contract.Status.IsTerminal() {
		return nil, errors.Conflict("content is frozen once a contract is " + string(contract.Status))
	}

	source := input.Source
	if source == "" {
		source = entities.VersionSourceUser
	}

	var version *entities.ContractVersion
	generated := contract.Status == entities.ContractStatusDraft && source == entities.VersionSourceAI

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		version, err = uc.versionRepo.Append(txCtx, id, input.Content, source, actor.ID)
		if err != nil {
			return err
		}

		if generated {
			ok, err := uc.contractRepo.UpdateStatusCAS(txCtx, id, entities.ContractStatusDraft, entities.ContractStatusGenerated, false)
			if err != nil {
				return err
			}
			if !ok {
				return errors.Conflict("contract status changed concurrently")
			}
			return uc.activityRepo.Create(txCtx, &entities.ActivityLog{
				ContractID: id,
				Action:     entities.ActivityGenerated,
				UserID:     actor.ID,
				UserName:   actor.DisplayName(),
				Details:    map[string]interface{}{"version": version.Version},
			})
		}

		return uc.activityRepo.Create(txCtx, &entities.ActivityLog{
			ContractID: id,
			Action:     entities.ActivityUpdated,
			UserID:     actor.ID,
			UserName:   actor.DisplayName(),
			Details:    map[string]interface{}{"field": "content", "version": version.Version},
		})
	})
	if err != nil {
		if _, isApp := errors.AsAppError(err); isApp {
			return nil, err
		}
		return nil, errors.InternalError(err)
	}
	return version, nil
}

func (uc *ContractUsecase) GetVersions(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]*entities.ContractVersion, error) {
	if _, err := uc.loadOwned(ctx, id, actor); err != nil {
		return nil, err
	}
	versions, err := uc.versionRepo.GetAll(ctx, id)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return versions, nil
}

// GetHistory returns the activity trail, newest first.
func (uc *ContractUsecase) GetHistory(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]*entities.ActivityLog, error) {
	if _, err := uc.loadOwned(ctx, id, actor); err != nil {
		return nil, err
	}
	logs, err := uc.activityRepo.GetAll(ctx, id)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return logs, nil
}

func (uc *ContractUsecase) ListParties(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]*entities.ContractParty, error) {
	if _, err := uc.loadOwned(ctx, id, actor); err != nil {
		return nil, err
	}
	parties, err := uc.partyRepo.GetAll(ctx, id)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return parties, nil
}

// AddParty attaches a signer to the roster. The roster is frozen together
// with the content once the contract is terminal.
func (uc *ContractUsecase) AddParty(ctx context.Context, actor entities.CurrentUser, id uuid.UUID, input entities.AddPartyInput) (*entities.ContractParty, error) {
	contract, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if contract.Status.IsTerminal() {
		return nil, errors.Conflict("cannot modify parties of a " + string(contract.Status) + " contract")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := uc.partyRepo.GetAll(ctx, id)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	for _, p := range existing {
		if strings.EqualFold(p.Email, email) {
			return nil, errors.Conflict("a party with this email already exists on the contract")
		}
	}

	order := input.Order
	if order < 1 {
		order = 1
	}
	party := &entities.ContractParty{
		ID:              utils.GenerateUUIDv7(),
		ContractID:      id,
		Role:            input.Role,
		Name:            input.Name,
		Email:           email,
		SignatureStatus: entities.PartyStatusPending,
		SigningOrder:    order,
	}
	if err := uc.partyRepo.Create(ctx, party); err != nil {
		// The roster scan above races with concurrent adds; the unique index
		// catches the loser.
		if stderrors.Is(err, errors.ErrAlreadyExists) {
			return nil, errors.Conflict("a party with this email already exists on the contract")
		}
		return nil, errors.InternalError(err)
	}
	return party, nil
}

// RemoveParty detaches an unsigned party. A party who already signed is part
// of the evidentiary record and stays.
func (uc *ContractUsecase) RemoveParty(ctx context.Context, actor entities.CurrentUser, id, partyID uuid.UUID) error {
	if _, err := uc.loadOwned(ctx, id, actor); err != nil {
		return err
	}

	party, err := uc.partyRepo.GetByID(ctx, partyID)
	if err != nil || party.ContractID != id {
		return errors.NotFound("party not found on this contract")
	}
	if party.SignatureStatus == entities.PartyStatusSigned {
		return errors.Conflict("a party who already signed cannot be removed")
	}

	ok, err := uc.partyRepo.Delete(ctx, partyID, id)
	if err != nil {
		return errors.InternalError(err)
	}
	if !ok {
		return errors.NotFound("party not found on this contract")
	}
	return nil
}
