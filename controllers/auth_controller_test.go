package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloggapi/blogg/models"
	"github.com/bloggapi/blogg/utils"
)

func registerPayload(username string) map[string]string {
	return map[string]string{
		"username":        username,
		"email":           username + "@example.com",
		"password":        "passw0rd",
		"confirmPassword": "passw0rd",
	}
}

func TestRegisterThenDuplicateUsername(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/register", registerPayload("alice"))
	require.Equal(t, http.StatusOK, w.Code)
	status, message := decodeEnvelope(t, w)
	assert.Equal(t, utils.StatusSuccess, status)
	assert.Equal(t, "User Created Successfully!", message)

	w = doJSON(t, r, http.MethodPost, "/api/authentication/register", registerPayload("alice"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	status, message = decodeEnvelope(t, w)
	assert.Equal(t, utils.StatusError, status)
	assert.Equal(t, "User already exists!", message)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	r, _ := setupRouter(t)

	payload := registerPayload("alice")
	payload["confirmPassword"] = "different1"
	w := doJSON(t, r, http.MethodPost, "/api/authentication/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterWeakPasswordIsGenericFailure(t *testing.T) {
	r, db := setupRouter(t)

	payload := registerPayload("alice")
	payload["password"] = "abcdef"
	payload["confirmPassword"] = "abcdef"
	w := doJSON(t, r, http.MethodPost, "/api/authentication/register", payload)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	_, message := decodeEnvelope(t, w)
	assert.Equal(t, "User creation failed! Please check user details and try again.", message)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginReturnsTokenWithRoleClaims(t *testing.T) {
	r, db := setupRouter(t)
	user := seedUser(t, db, "alice", "passw0rd", "admin", "editor")

	before := time.Now()
	w := doJSON(t, r, http.MethodPost, "/api/authentication/login", map[string]string{
		"username": "alice",
		"password": "passw0rd",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UserID     string    `json:"userId"`
		Token      string    `json:"token"`
		Expiration time.Time `json:"expiration"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.UserID)
	assert.WithinDuration(t, before.Add(utils.TokenValidity), resp.Expiration, 2*time.Second)

	issuer := &utils.TokenIssuer{Secret: testSecret, Issuer: testIssuer, Audience: testAudience}
	claims, err := issuer.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.ElementsMatch(t, []string{"admin", "editor"}, claims.Roles)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, db := setupRouter(t)
	seedUser(t, db, "alice", "passw0rd")

	w := doJSON(t, r, http.MethodPost, "/api/authentication/login", map[string]string{
		"username": "alice",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/authentication/login", map[string]string{
		"username": "nobody",
		"password": "passw0rd",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddRoleThenDuplicate(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/add-role?role=admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, message := decodeEnvelope(t, w)
	assert.Equal(t, "Role Created Successfully!", message)

	w = doJSON(t, r, http.MethodPost, "/api/authentication/add-role?role=admin", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAssignRoleToUserTwice(t *testing.T) {
	r, db := setupRouter(t)
	seedUser(t, db, "alice", "passw0rd")
	doJSON(t, r, http.MethodPost, "/api/authentication/add-role?role=admin", nil)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/add-role-to-user?Username=alice&role=admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, message := decodeEnvelope(t, w)
	assert.Equal(t, "User added to role successfully", message)

	w = doJSON(t, r, http.MethodPost, "/api/authentication/add-role-to-user?Username=alice&role=admin", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	_, message = decodeEnvelope(t, w)
	assert.Equal(t, "User exists in role", message)
}

func TestAssignRoleMissingUserOrRole(t *testing.T) {
	r, db := setupRouter(t)
	seedUser(t, db, "alice", "passw0rd")
	doJSON(t, r, http.MethodPost, "/api/authentication/add-role?role=admin", nil)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/add-role-to-user?Username=nobody&role=admin", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/authentication/add-role-to-user?Username=alice&role=ghost", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAddClaimRequiresAuthentication(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/add-claim?role=admin&claims=Create+Post", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddClaimWithTokenPersistsClaims(t *testing.T) {
	r, db := setupRouter(t)
	seedUser(t, db, "alice", "passw0rd")
	doJSON(t, r, http.MethodPost, "/api/authentication/add-role?role=moderator", nil)

	issuer := &utils.TokenIssuer{Secret: testSecret, Issuer: testIssuer, Audience: testAudience}
	token, _, err := issuer.Generate("alice", nil)
	require.NoError(t, err)

	req := doJSONAuthed(t, r, "/api/authentication/add-claim?role=moderator&claims=Create+Post&claims=Delete+Comment", token)
	require.Equal(t, http.StatusOK, req.Code)
	_, message := decodeEnvelope(t, req)
	assert.Equal(t, "Claim Created Successfully!", message)

	var claims []models.RoleClaim
	require.NoError(t, db.Find(&claims).Error)
	require.Len(t, claims, 2)
	values := []string{claims[0].ClaimValue, claims[1].ClaimValue}
	assert.ElementsMatch(t, []string{"Create Post", "Delete Comment"}, values)
	assert.Equal(t, models.ClaimTypePermission, claims[0].ClaimType)
}

func TestAddClaimUnknownRole(t *testing.T) {
	r, db := setupRouter(t)
	seedUser(t, db, "alice", "passw0rd")

	issuer := &utils.TokenIssuer{Secret: testSecret, Issuer: testIssuer, Audience: testAudience}
	token, _, err := issuer.Generate("alice", nil)
	require.NoError(t, err)

	w := doJSONAuthed(t, r, "/api/authentication/add-claim?role=ghost&claims=Create+Post", token)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	_, message := decodeEnvelope(t, w)
	assert.Equal(t, "Role does not exist.", message)
}
