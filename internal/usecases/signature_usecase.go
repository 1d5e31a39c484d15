package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/domain/errors"
	domainRepos "contract-hub.backend/internal/domain/repositories"
	"contract-hub.backend/pkg/crypto"
	"contract-hub.backend/pkg/logger"
	"contract-hub.backend/pkg/utils"
)

// SignatureUsecase coordinates the signer roster and the signing acts. It
// never rewrites a signature: once a Signature row exists the party is SIGNED
// and stays that way.
type SignatureUsecase struct {
	contractRepo  domainRepos.ContractRepository
	versionRepo   domainRepos.ContractVersionRepository
	partyRepo     domainRepos.ContractPartyRepository
	activityRepo  domainRepos.ActivityLogRepository
	signatureRepo domainRepos.SignatureRepository
	tokenRepo     domainRepos.SignatureTokenRepository
	uow           domainRepos.UnitOfWork

	tokenExpiry time.Duration
	frontendURL string
}

func NewSignatureUsecase(
	contractRepo domainRepos.ContractRepository,
	versionRepo domainRepos.ContractVersionRepository,
	partyRepo domainRepos.ContractPartyRepository,
	activityRepo domainRepos.ActivityLogRepository,
	signatureRepo domainRepos.SignatureRepository,
	tokenRepo domainRepos.SignatureTokenRepository,
	uow domainRepos.UnitOfWork,
	tokenExpiry time.Duration,
	frontendURL string,
) *SignatureUsecase {
	return &SignatureUsecase{
		contractRepo:  contractRepo,
		versionRepo:   versionRepo,
		partyRepo:     partyRepo,
		activityRepo:  activityRepo,
		signatureRepo: signatureRepo,
		tokenRepo:     tokenRepo,
		uow:           uow,
		tokenExpiry:   tokenExpiry,
		frontendURL:   frontendURL,
	}
}

// documentHash fingerprints the signing act for the evidentiary record.
func documentHash(contractID, partyID uuid.UUID, at time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", contractID, partyID, at.UTC().Format(time.RFC3339Nano))))
	return hex.EncodeToString(sum[:])
}

// CreateToken issues a single-use signing link for a party. Issuing is the
// invitation: the party moves PENDING to INVITED and the trail records SENT.
func (uc *SignatureUsecase) CreateToken(ctx context.Context, actor entities.CurrentUser, input entities.CreateTokenInput) (*entities.SignatureTokenResult, error) {
	contract, err := uc.contractRepo.GetByID(ctx, input.ContractID, false)
	if err != nil {
		return nil, errors.NotFound("contract not found")
	}
	if contract.OwnerUserID != actor.ID {
		return nil, errors.Forbidden("you do not have access to this contract")
	}
	if contract.Status != entities.ContractStatusSigning {
		return nil, errors.Conflict("contract is not out for signing")
	}

	party, err := uc.partyRepo.GetByID(ctx, input.PartyID)
	if err != nil || party.ContractID != contract.ID {
		return nil, errors.NotFound("party not found on this contract")
	}
	if party.SignatureStatus == entities.PartyStatusSigned {
		return nil, errors.Conflict("party has already signed")
	}

	raw, err := crypto.GenerateSigningToken()
	if err != nil {
		return nil, errors.InternalError(err)
	}

	expiry := uc.tokenExpiry
	if input.ExpiresInMinutes > 0 {
		expiry = time.Duration(input.ExpiresInMinutes) * time.Minute
	}
	expiresAt := time.Now().UTC().Add(expiry)

	token := &entities.SignatureToken{
		ID:         utils.GenerateUUIDv7(),
		Token:      raw,
		ContractID: contract.ID,
		PartyID:    party.ID,
		ExpiresAt:  expiresAt,
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.tokenRepo.Create(txCtx, token); err != nil {
			return err
		}
		if party.SignatureStatus == entities.PartyStatusPending {
			if err := uc.partyRepo.UpdateStatus(txCtx, party.ID, entities.PartyStatusInvited, nil); err != nil {
				return err
			}
		}
		return uc.activityRepo.Create(txCtx, &entities.ActivityLog{
			ContractID: contract.ID,
			Action:     entities.ActivitySent,
			UserID:     actor.ID,
			UserName:   actor.DisplayName(),
			Details:    map[string]interface{}{"partyEmail": party.Email, "partyName": party.Name},
		})
	})
	if err != nil {
		return nil, errors.InternalError(err)
	}

	logger.Info(ctx, "signing token issued",
		zap.String("contract_id", contract.ID.String()),
		zap.String("party_id", party.ID.String()))

	return &entities.SignatureTokenResult{
		Token:     raw,
		SignURL:   uc.frontendURL + "/sign/" + raw,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken answers whether a signing link is usable. An unknown, used
// or expired token is a negative answer, not an error.
func (uc *SignatureUsecase) ValidateToken(ctx context.Context, raw string) (*entities.TokenValidation, error) {
	token, err := uc.tokenRepo.Validate(ctx, raw)
	if err != nil {
		return &entities.TokenValidation{Valid: false}, nil
	}
	return &entities.TokenValidation{
		Valid:      true,
		ContractID: &token.ContractID,
		PartyID:    &token.PartyID,
		ExpiresAt:  &token.ExpiresAt,
	}, nil
}

// PublicView is the reduced contract shown behind a valid signing link.
func (uc *SignatureUsecase) PublicView(ctx context.Context, contractID uuid.UUID, raw string) (*entities.PublicContractView, error) {
	token, err := uc.tokenRepo.Validate(ctx, raw)
	if err != nil || token.ContractID != contractID {
		return nil, errors.Unauthorized("invalid or expired signing token")
	}

	contract, err := uc.contractRepo.GetByID(ctx, contractID, false)
	if err != nil {
		return nil, errors.NotFound("contract not found")
	}

	view := &entities.PublicContractView{ID: contract.ID, Title: contract.Title}
	if latest, err := uc.versionRepo.GetLatest(ctx, contractID); err == nil {
		view.Content = latest.Content
	}
	return view, nil
}

// Sign records a signing act by an authenticated user on behalf of a party.
func (uc *SignatureUsecase) Sign(ctx context.Context, actor entities.CurrentUser, input entities.SignInput) (*entities.SignResult, error) {
	contract, err := uc.contractRepo.GetByID(ctx, input.ContractID, false)
	if err != nil {
		return nil, errors.NotFound("contract not found")
	}

	party, err := uc.partyRepo.GetByID(ctx, input.PartyID)
	if err != nil || party.ContractID != contract.ID {
		return nil, errors.NotFound("party not found on this contract")
	}

	return uc.recordSignature(ctx, contract, party, input.Evidence, actor.ID, actor.DisplayName())
}

// GuestSign records a signing act authorized by a single-use token.
func (uc *SignatureUsecase) GuestSign(ctx context.Context, input entities.GuestSignInput) (*entities.SignResult, error) {
	token, err := uc.tokenRepo.Validate(ctx, input.Token)
	if err != nil {
		return nil, errors.Unauthorized("invalid or expired signing token")
	}

	contract, err := uc.contractRepo.GetByID(ctx, token.ContractID, false)
	if err != nil {
		return nil, errors.NotFound("contract not found")
	}
	party, err := uc.partyRepo.GetByID(ctx, token.PartyID)
	if err != nil {
		return nil, errors.NotFound("party not found on this contract")
	}

	result, err := uc.recordSignatureWithToken(ctx, contract, party, input.Evidence, party.ID, party.Name, input.Token)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *SignatureUsecase) recordSignature(ctx context.Context, contract *entities.Contract, party *entities.ContractParty, evidence *entities.SignatureEvidence, actorID uuid.UUID, actorName string) (*entities.SignResult, error) {
	return uc.recordSignatureWithToken(ctx, contract, party, evidence, actorID, actorName, "")
}

// recordSignatureWithToken writes the signature, marks the party SIGNED,
// consumes the token when present, and closes the contract when the roster
// is complete. One transaction; a failure leaves no partial signing state.
func (uc *SignatureUsecase) recordSignatureWithToken(ctx context.Context, contract *entities.Contract, party *entities.ContractParty, evidence *entities.SignatureEvidence, actorID uuid.UUID, actorName string, usedToken string) (*entities.SignResult, error) {
	if contract.Status != entities.ContractStatusSigning {
		return nil, errors.Conflict("contract is not out for signing")
	}
	if party.SignatureStatus == entities.PartyStatusSigned {
		return nil, errors.Conflict("party has already signed")
	}

	signedAt := time.Now().UTC()
	sig := &entities.Signature{
		ID:           utils.GenerateUUIDv7(),
		ContractID:   contract.ID,
		PartyID:      party.ID,
		PartyName:    party.Name,
		DocumentHash: documentHash(contract.ID, party.ID, signedAt),
		SignedAt:     signedAt,
	}
	if evidence != nil {
		if evidence.IPAddress != "" {
			sig.IPAddress = null.StringFrom(evidence.IPAddress)
		}
		if evidence.UserAgent != "" {
			sig.UserAgent = null.StringFrom(evidence.UserAgent)
		}
		if evidence.Geolocation != "" {
			sig.Geolocation = null.StringFrom(evidence.Geolocation)
		}
	}

	var completed bool
	err := uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.signatureRepo.Create(txCtx, sig); err != nil {
			return err
		}
		if err := uc.partyRepo.UpdateStatus(txCtx, party.ID, entities.PartyStatusSigned, &signedAt); err != nil {
			return err
		}
		if usedToken != "" {
			if err := uc.tokenRepo.MarkUsed(txCtx, usedToken); err != nil {
				return err
			}
		}

		unsigned, err := uc.partyRepo.CountUnsigned(txCtx, contract.ID)
		if err != nil {
			return err
		}
		completed = unsigned == 0

		details := map[string]interface{}{
			"partyName":  party.Name,
			"partyEmail": party.Email,
		}
		if completed {
			ok, err := uc.contractRepo.UpdateStatusCAS(txCtx, contract.ID, entities.ContractStatusSigning, entities.ContractStatusSigned, true)
			if err != nil {
				return err
			}
			if !ok {
				return errors.Conflict("contract status changed concurrently")
			}
			details["completed"] = true
		}

		return uc.activityRepo.Create(txCtx, &entities.ActivityLog{
			ContractID: contract.ID,
			Action:     entities.ActivitySigned,
			UserID:     actorID,
			UserName:   actorName,
			Details:    details,
		})
	})
	if err != nil {
		if _, isApp := errors.AsAppError(err); isApp {
			return nil, err
		}
		return nil, errors.InternalError(err)
	}

	logger.Info(ctx, "party signed",
		zap.String("contract_id", contract.ID.String()),
		zap.String("party_id", party.ID.String()),
		zap.Bool("contract_completed", completed))

	return &entities.SignResult{
		SignatureID:  sig.ID,
		DocumentHash: sig.DocumentHash,
		SignedAt:     signedAt,
	}, nil
}

// MarkPartySigned is the idempotent coordinator hook: re-invoking for an
// already signed party is a no-op success.
func (uc *SignatureUsecase) MarkPartySigned(ctx context.Context, partyID uuid.UUID, signedAt time.Time) error {
	party, err := uc.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return errors.NotFound("party not found")
	}
	if party.SignatureStatus == entities.PartyStatusSigned {
		return nil
	}
	if err := uc.partyRepo.UpdateStatus(ctx, partyID, entities.PartyStatusSigned, &signedAt); err != nil {
		return errors.InternalError(err)
	}
	return nil
}

// GetContractSignatures lists the evidentiary records, owner-gated.
func (uc *SignatureUsecase) GetContractSignatures(ctx context.Context, actor entities.CurrentUser, contractID uuid.UUID) ([]*entities.Signature, error) {
	contract, err := uc.contractRepo.GetByID(ctx, contractID, false)
	if err != nil {
		return nil, errors.NotFound("contract not found")
	}
	if contract.OwnerUserID != actor.ID {
		return nil, errors.Forbidden("you do not have access to this contract")
	}
	sigs, err := uc.signatureRepo.GetByContract(ctx, contractID)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return sigs, nil
}
