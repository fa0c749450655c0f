package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/subsidyhub/backend/api/transport"
	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/internal/classifier"
	"github.com/subsidyhub/backend/internal/metrics"
	"github.com/subsidyhub/backend/pkg/httpcontext"
)

const predictTimeLayout = "2006-01-02 15:04:05"

// PredictHandler serves the standalone prediction endpoint. It never touches
// the application store: callers supply a fully-formed feature set.
type PredictHandler struct {
	baseHandler
	model *classifier.Classifier
}

func NewPredictHandler(model *classifier.Classifier, adapter *httpcontext.Adapter, logger *zap.Logger) *PredictHandler {
	return &PredictHandler{
		baseHandler: newBaseHandler(adapter, logger),
		model:       model,
	}
}

// @Summary Classify an ad-hoc feature set
// @Tags predict
// @Router /predict [post]
func (h *PredictHandler) Predict(ctx *fasthttp.RequestCtx) {
	if !h.model.Ready() {
		h.respondJSON(ctx, http.StatusInternalServerError,
			transport.ErrorResponse{Error: "Model not loaded"})
		return
	}

	var body map[string]interface{}
	if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
		h.predictError(ctx, "invalid JSON body")
		return
	}

	var missing []string
	for _, field := range transport.PredictRequiredFields {
		if _, ok := body[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{
			Error: "Missing fields: " + strings.Join(missing, ", "),
		})
		metrics.Predictions.WithLabelValues("rejected").Inc()
		return
	}

	features, err := buildFeatures(body)
	if err != nil {
		h.predictError(ctx, err.Error())
		metrics.Predictions.WithLabelValues("rejected").Inc()
		return
	}

	result, err := h.model.Classify(features)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUnavailable) {
			h.respondJSON(ctx, http.StatusInternalServerError,
				transport.ErrorResponse{Error: "Model not loaded"})
		} else {
			h.predictError(ctx, err.Error())
		}
		metrics.Predictions.WithLabelValues("failed").Inc()
		return
	}

	metrics.Predictions.WithLabelValues("served").Inc()
	h.respondJSON(ctx, http.StatusOK, transport.PredictionResponse{
		Prediction:  result.Label,
		Probability: math.Round(result.Probability*10000) / 100,
		Timestamp:   time.Now().Format(predictTimeLayout),
	})
}

// @Summary Predictor health
// @Tags predict
// @Router /health [get]
func (h *PredictHandler) Health(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"model": h.model.Ready(),
		},
	})
}

func (h *PredictHandler) predictError(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{
		Error:     message,
		Timestamp: time.Now().Format(predictTimeLayout),
	})
}

// buildFeatures adapts the request body into the canonical feature vector.
// Numeric fields accept JSON numbers or numeric strings; is_employed is
// boolean-like (bool, number, or "true"/"1"/"yes").
func buildFeatures(body map[string]interface{}) (domain.FeatureVector, error) {
	fv := domain.NewFeatureVector()

	for _, field := range []string{
		domain.FeatureApplicantIncome,
		domain.FeatureClaimedSubsidyAmount,
		domain.FeatureLandOwnedAcres,
		domain.FeatureNumberOfDependents,
		domain.FeaturePreviousClaims,
	} {
		value, err := toFloat(body[field])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		fv[field] = value
	}

	if isEmployed(body["is_employed"]) {
		fv[domain.FeatureIsEmployed] = 1
	}

	region, _ := body["region"].(string)
	fv.SetRegion(region)

	return fv, nil
}

func toFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number")
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("not a number")
	}
}

func isEmployed(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			return true
		}
	}
	return false
}
