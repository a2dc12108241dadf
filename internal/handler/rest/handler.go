package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ISABROTHER/DELIVERYAPP/internal/agents"
	"github.com/ISABROTHER/DELIVERYAPP/internal/auth"
	"github.com/ISABROTHER/DELIVERYAPP/internal/commit"
	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/ISABROTHER/DELIVERYAPP/internal/payment"
	"github.com/ISABROTHER/DELIVERYAPP/internal/prefs"
	"github.com/ISABROTHER/DELIVERYAPP/internal/sendflow"
	"github.com/ISABROTHER/DELIVERYAPP/internal/store"
)

// Handler wires the app services to the HTTP API the mobile client
// talks to.
type Handler struct {
	auth      *auth.Service
	lookup    *agents.Lookup
	committer *commit.Committer
	shipments store.ShipmentStore
	prefs     *prefs.Service
}

func NewHandler(authSvc *auth.Service, lookup *agents.Lookup, committer *commit.Committer, shipments store.ShipmentStore, prefSvc *prefs.Service) *Handler {
	return &Handler{
		auth:      authSvc,
		lookup:    lookup,
		committer: committer,
		shipments: shipments,
		prefs:     prefSvc,
	}
}

// Register mounts all routes on the engine.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/auth/register", h.register)
	api.POST("/auth/login", h.login)

	authed := api.Group("", h.requireAuth)
	authed.GET("/agents", h.listAgents)
	authed.POST("/shipments", h.createShipment)
	authed.GET("/shipments", h.listShipments)
	authed.GET("/shipments/:id", h.getShipment)
	authed.GET("/profile/preferences", h.getPreferences)
	authed.PUT("/profile/preferences", h.putPreferences)
}

// requireAuth resolves the bearer token to a user id and stores it in
// the gin context for the handlers downstream.
func (h *Handler) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	userID, err := h.auth.CurrentUserID(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.Set("userID", userID)
	c.Next()
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	c.Status(http.StatusCreated)
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken": result.AccessToken,
		"expiresIn":   result.ExpiresIn,
		"tokenType":   result.TokenType,
		"userId":      result.UserID,
	})
}

// listAgents serves the agent picker on the handover step. Lookup
// failures already degrade to an empty list inside the service.
func (h *Handler) listAgents(c *gin.Context) {
	method := models.HandoverMethod(strings.ToUpper(c.DefaultQuery("method", string(models.HandoverDropoff))))
	if method != models.HandoverDropoff && method != models.HandoverPickup {
		c.JSON(http.StatusBadRequest, gin.H{"error": "method must be DROPOFF or PICKUP"})
		return
	}
	result := h.lookup.FetchNearbyAgents(c.Request.Context(), agents.Query{
		Region:   c.Query("region"),
		CityTown: c.Query("cityTown"),
		Method:   method,
	})
	c.JSON(http.StatusOK, gin.H{"agents": result})
}

// createShipmentRequest is the full wizard payload in one call. The
// mobile client runs the step machine locally and submits everything
// at the pay step.
type createShipmentRequest struct {
	Parcel struct {
		Size        string `json:"size" binding:"required"`
		WeightRange string `json:"weightRange" binding:"required"`
		Category    string `json:"category"`
	} `json:"parcel" binding:"required"`
	Route     models.Route `json:"route" binding:"required"`
	Handover  struct {
		Method        string                `json:"method" binding:"required"`
		PickupDetails *models.PickupDetails `json:"pickupDetails"`
		AgentID       string                `json:"agentId"`
	} `json:"handover" binding:"required"`
	Sender    models.SenderInfo    `json:"sender" binding:"required"`
	Recipient models.RecipientInfo `json:"recipient" binding:"required"`
	Payment   *struct {
		CustomerID      string `json:"customerId"`
		PaymentMethodID string `json:"paymentMethodId"`
	} `json:"payment"`
}

func (h *Handler) createShipment(c *gin.Context) {
	var req createShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Server-side re-validation: never trust the client's gating.
	if !sendflow.ValidateName(req.Sender.Name) || !sendflow.ValidatePhoneNumber(req.Sender.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sender details"})
		return
	}
	if !sendflow.ValidateName(req.Recipient.Name) || !sendflow.ValidatePhoneNumber(req.Recipient.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient details"})
		return
	}
	if !req.Route.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "route endpoints need region and city/town"})
		return
	}

	w := sendflow.NewWizard()
	w.UpdateParcel(models.ParcelDetails{
		Size:        models.ParcelSize(req.Parcel.Size),
		WeightRange: req.Parcel.WeightRange,
		Category:    req.Parcel.Category,
	})
	w.UpdateRoute(req.Route)
	handover := models.Handover{
		Method:        models.HandoverMethod(req.Handover.Method),
		PickupDetails: req.Handover.PickupDetails,
	}
	if req.Handover.AgentID != "" {
		handover.SelectedAgent = &models.Agent{ID: req.Handover.AgentID}
	}
	w.UpdateHandover(handover)
	w.UpdateSender(req.Sender)
	w.UpdateRecipient(req.Recipient)
	if req.Payment != nil {
		w.UpdatePayment(models.PaymentInstrument{
			CustomerID:      req.Payment.CustomerID,
			PaymentMethodID: req.Payment.PaymentMethodID,
		})
	}

	created, err := h.committer.Commit(c.Request.Context(), w, c.GetString("userID"))
	if err != nil {
		switch {
		case errors.Is(err, commit.ErrNoAgentSelected),
			errors.Is(err, commit.ErrIncompleteWizard),
			errors.Is(err, commit.ErrMissingPickupInfo),
			errors.Is(err, commit.ErrInvalidHandover):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, payment.ErrPaymentFailed),
			errors.Is(err, payment.ErrNoPaymentMethod),
			errors.Is(err, payment.ErrInvalidAmount):
			// Terminal decline: retrying with the same card won't help.
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		default:
			// Retryable: nothing was lost, the client may submit again.
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not save shipment, please retry"})
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) listShipments(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 32)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 32)
	status := models.ShipmentStatus(c.Query("status"))

	shipments, err := h.shipments.GetShipments(c.Request.Context(), c.GetString("userID"), status, int32(limit), int32(offset))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list shipments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipments": shipments})
}

func (h *Handler) getShipment(c *gin.Context) {
	sh, err := h.shipments.GetShipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get shipment"})
		return
	}
	if sh.SenderUserID != c.GetString("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "shipment not found"})
		return
	}
	c.JSON(http.StatusOK, sh)
}

func (h *Handler) getPreferences(c *gin.Context) {
	p, err := h.prefs.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preferences"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type preferencesRequest struct {
	FavoriteAgentID string `json:"favoriteAgentId"`
}

func (h *Handler) putPreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.prefs.SetFavoriteAgent(c.Request.Context(), c.GetString("userID"), req.FavoriteAgentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}
	c.Status(http.StatusNoContent)
}
