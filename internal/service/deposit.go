package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/a1tips/paymentgateway/pkg/hostedcheckout"
	"github.com/a1tips/paymentgateway/pkg/momo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type DepositService interface {
	Initiate(ctx context.Context, cmd DepositCommand) (DepositResult, error)
}

type Deposit struct {
	tokens       TokenService
	momo         momo.Client
	hosted       hostedcheckout.Client
	momoCfg      momo.Config
	hostedCfg    hostedcheckout.Config
	divisor      decimal.Decimal
	newReference func() string
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewDepositService(tokens TokenService, momoClient momo.Client, hostedClient hostedcheckout.Client,
	cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger,
) (DepositService, error) {
	divisor, err := cfg.MoMo.Divisor()
	if err != nil {
		return nil, err
	}

	return &Deposit{
		tokens:       tokens,
		momo:         momoClient,
		hosted:       hostedClient,
		momoCfg:      cfg.MoMo,
		hostedCfg:    cfg.HostedCheckout,
		divisor:      divisor,
		newReference: uuid.NewString,
		metrics:      metrics,
		logger:       logger,
	}, nil
}

func (d *Deposit) Initiate(ctx context.Context, cmd DepositCommand) (DepositResult, error) {
	if cmd == nil {
		return DepositResult{}, NewServiceError(constants.ErrCodeValidationFailure, ErrUnsupportedDeposit)
	}

	if err := cmd.validate(); err != nil {
		return DepositResult{}, NewServiceError(constants.ErrCodeValidationFailure, err)
	}

	var (
		result DepositResult
		err    error
	)

	switch c := cmd.(type) {
	case MoMoDepositCommand:
		result, err = d.initiateMoMo(ctx, c)
	case HostedDepositCommand:
		result, err = d.initiateHosted(ctx, c)
	default:
		return DepositResult{}, NewServiceError(constants.ErrCodeValidationFailure, ErrUnsupportedDeposit)
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	d.metrics.RecordDeposit(string(cmd.provider()), outcome)

	return result, err
}

func (d *Deposit) initiateMoMo(ctx context.Context, cmd MoMoDepositCommand) (DepositResult, error) {
	amount := cmd.Amount.Div(d.divisor).Round(2)
	if !amount.IsPositive() {
		return DepositResult{}, NewServiceError(constants.ErrCodeValidationFailure,
			fmt.Errorf("%w: amount %s converts to %s", ErrAmountTooSmall, cmd.Amount, amount.StringFixed(2)))
	}

	accessToken, err := d.tokens.AccessToken(ctx)
	if err != nil {
		return DepositResult{}, err
	}

	referenceID := d.newReference()

	currency := cmd.Currency
	if currency == "" {
		currency = d.momoCfg.Currency
	}

	request := momo.RequestToPayRequest{
		Amount:     amount.StringFixed(2),
		Currency:   currency,
		ExternalID: cmd.GameType,
		Payer: momo.Party{
			PartyIDType: momo.PartyIDTypeMSISDN,
			PartyID:     cmd.PhoneNumber,
		},
		PayerMessage: "Pay for " + cmd.GameType,
		PayeeNote:    payeeNote(cmd.Email),
	}

	start := time.Now()
	err = d.momo.RequestToPay(ctx, accessToken, referenceID, request)
	d.metrics.RecordProviderCall(string(model.ProviderMoMo), "request_to_pay", err, time.Since(start))
	if err != nil {
		statusCode, body := providerFields(err)
		d.logger.Error("Request to pay failed",
			zap.Error(err),
			zap.String("referenceId", referenceID),
			zap.Int("providerStatus", statusCode),
			zap.String("providerBody", body))
		return DepositResult{}, providerError(err)
	}

	d.logger.Info("Request to pay accepted",
		zap.String("referenceId", referenceID),
		zap.String("gameType", cmd.GameType),
		zap.String("amount", request.Amount),
		zap.String("currency", currency))

	return DepositResult{
		ReferenceID: referenceID,
		Status:      model.ChargeStatusPending,
		Message:     MsgPaymentPromptSent,
	}, nil
}

func (d *Deposit) initiateHosted(ctx context.Context, cmd HostedDepositCommand) (DepositResult, error) {
	referenceID := d.newReference()

	currency := cmd.Currency
	if currency == "" {
		currency = d.hostedCfg.Currency
	}

	amount := cmd.Amount.Round(2)
	if !amount.IsPositive() {
		return DepositResult{}, NewServiceError(constants.ErrCodeValidationFailure,
			fmt.Errorf("%w: amount %s rounds to %s", ErrAmountTooSmall, cmd.Amount, amount.StringFixed(2)))
	}

	input := hostedcheckout.PaymentInput{
		Amount:      json.Number(amount.StringFixed(2)),
		Currency:    currency,
		CountryCode: cmd.CountryCode,
		Email:       cmd.Email,
		FirstName:   cmd.FirstName,
		LastName:    cmd.LastName,
		RedirectURL: d.hostedCfg.RedirectURL,
		Reference:   referenceID,
		Metadata:    hostedcheckout.Metadata{GameType: cmd.GameType},
	}

	start := time.Now()
	payment, err := d.hosted.InitiateHostedPayment(ctx, input)
	d.metrics.RecordProviderCall(string(model.ProviderHostedCheckout), "initiate_hosted_payment", err, time.Since(start))
	if err != nil {
		statusCode, body := providerFields(err)
		d.logger.Error("Hosted payment initiation failed",
			zap.Error(err),
			zap.String("referenceId", referenceID),
			zap.Int("providerStatus", statusCode),
			zap.String("providerBody", body))
		return DepositResult{}, providerError(err)
	}

	d.logger.Info("Hosted payment link created",
		zap.String("referenceId", referenceID),
		zap.String("countryCode", cmd.CountryCode))

	return DepositResult{
		ReferenceID: referenceID,
		Status:      model.ChargeStatusPending,
		Message:     MsgHostedLinkCreated,
		HostedLink:  payment.HostedLink,
	}, nil
}

const payeeNotePrefix = "Customer "

func payeeNote(email string) string {
	return fmt.Sprintf("%s%s", payeeNotePrefix, email)
}
