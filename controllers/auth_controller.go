package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bloggapi/blogg/authz"
	"github.com/bloggapi/blogg/middleware"
	"github.com/bloggapi/blogg/stores"
	"github.com/bloggapi/blogg/utils"
)

// AuthController handles authentication and role management endpoints.
type AuthController struct {
	creds  *stores.CredentialStore
	issuer *utils.TokenIssuer
	guard  *utils.RegisterGuard
}

// NewAuthController creates an AuthController. The guard may be nil when
// registration throttling is disabled.
func NewAuthController(creds *stores.CredentialStore, issuer *utils.TokenIssuer, guard *utils.RegisterGuard) *AuthController {
	return &AuthController{creds: creds, issuer: issuer, guard: guard}
}

// Login authenticates a user and issues a bearer token carrying the
// user's role claims. Unknown username and wrong password are
// indistinguishable to the caller.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := a.creds.FindByUsername(req.Username)
	if err != nil || !a.creds.CheckPassword(user, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	roles, err := a.creds.RolesOf(user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to resolve roles")
		return
	}

	token, expiresAt, err := a.issuer.Generate(user.Username, roles)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"userId":     user.ID,
		"token":      token,
		"expiration": expiresAt,
	})
}

// Register creates a local account. Duplicate usernames fail loudly;
// password policy rejections collapse into a generic message so store
// internals are not exposed.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username        string `json:"username" binding:"required"`
		Email           string `json:"email" binding:"required,email"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	ip := ctx.ClientIP()
	if !a.guard.CooldownTry(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, "too many attempts, slow down")
		return
	}
	if !a.guard.DailyAllow(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, "daily registration limit reached")
		return
	}

	_, err := a.creds.CreateUser(strings.TrimSpace(req.Username), strings.TrimSpace(req.Email), req.Password)
	switch {
	case err == nil:
	case errors.Is(err, stores.ErrDuplicateUser):
		utils.Error(ctx, http.StatusInternalServerError, "User already exists!")
		return
	default:
		utils.Error(ctx, http.StatusInternalServerError, "User creation failed! Please check user details and try again.")
		return
	}

	a.guard.DailyIncrement(ip)
	utils.Success(ctx, "User Created Successfully!")
}

// AddRole creates a role with a unique name.
func (a *AuthController) AddRole(ctx *gin.Context) {
	name := strings.TrimSpace(ctx.Query("role"))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, "role is required")
		return
	}

	if _, err := a.creds.CreateRole(name); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Role creation failed! Please check the details and try again.")
		return
	}
	utils.Success(ctx, "Role Created Successfully!")
}

// AddClaim appends permission claims to an existing role. Any
// authenticated caller may do this; the requirement lives in the policy
// table.
func (a *AuthController) AddClaim(ctx *gin.Context) {
	if !authz.Allow(authz.OpAddClaim, middleware.IdentityFrom(ctx)) {
		utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	name := strings.TrimSpace(ctx.Query("role"))
	claims := ctx.QueryArray("claims")
	if name == "" || len(claims) == 0 {
		utils.Error(ctx, http.StatusBadRequest, "role and claims are required")
		return
	}

	role, err := a.creds.FindRoleByName(name)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Role does not exist.")
		return
	}

	for _, claim := range claims {
		if err := a.creds.AddClaimToRole(role, claim); err != nil {
			utils.Error(ctx, http.StatusInternalServerError, "Claim creation failed! Please check the details and try again.")
			return
		}
	}
	utils.Success(ctx, "Claim Created Successfully!")
}

// AssignRole adds a user to a role. Missing user and missing role
// collapse into one generic failure; a duplicate membership is reported
// as such.
func (a *AuthController) AssignRole(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Query("Username"))
	roleName := strings.TrimSpace(ctx.Query("role"))

	user, uerr := a.creds.FindByUsername(username)
	role, rerr := a.creds.FindRoleByName(roleName)
	if uerr != nil || rerr != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Operation failed! Please check your input and try again.")
		return
	}

	if err := a.creds.AssignRoleToUser(user, role); err != nil {
		if errors.Is(err, stores.ErrAlreadyInRole) {
			utils.Error(ctx, http.StatusInternalServerError, "User exists in role")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "Operation failed! Please check your input and try again.")
		return
	}
	utils.Success(ctx, "User added to role successfully")
}
