package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-agroadvisor/middleware"
	"go-agroadvisor/models"
	"go-agroadvisor/utils"
)

// AuthController handles registration and login.
type AuthController struct {
	DB         *sqlx.DB
	Secret     []byte
	TokenTTL   time.Duration
	AdminUsers map[string]bool
	Logger     *zap.Logger
}

// NewAuthController creates an AuthController. Users registering under one of
// adminUsers get the admin role.
func NewAuthController(db *sqlx.DB, secret []byte, ttl time.Duration, adminUsers []string, logger *zap.Logger) *AuthController {
	admins := make(map[string]bool, len(adminUsers))
	for _, u := range adminUsers {
		admins[u] = true
	}
	return &AuthController{DB: db, Secret: secret, TokenTTL: ttl, AdminUsers: admins, Logger: logger}
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user and returns a token.
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	var count int
	if err := c.DB.Get(&count, c.DB.Rebind("SELECT COUNT(*) FROM users WHERE username = ?"), req.Username); err != nil {
		c.Logger.Error("Failed to check username", zap.Error(err))
		utils.InternalServerError(ctx, "database query failed")
		return
	}
	if count > 0 {
		utils.Conflict(ctx, "username already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalServerError(ctx, "failed to hash password")
		return
	}

	user := models.User{
		Username:  req.Username,
		Password:  string(hashed),
		Role:      c.roleFor(req.Username),
		CreatedAt: time.Now().Format(timeLayout),
	}
	if user.ID, err = c.insertUser(user); err != nil {
		c.Logger.Error("Failed to create user", zap.String("username", req.Username), zap.Error(err))
		utils.InternalServerError(ctx, "failed to create user")
		return
	}

	token, err := middleware.GenerateToken(c.Secret, user.ID, user.Role, c.TokenTTL)
	if err != nil {
		utils.InternalServerError(ctx, "failed to generate token")
		return
	}

	c.Logger.Info("User registered", zap.Int("user_id", user.ID), zap.Int("role", user.Role))
	utils.Created(ctx, gin.H{
		"token":    token,
		"username": user.Username,
		"userId":   user.ID,
		"role":     user.Role,
	})
}

func (c *AuthController) roleFor(username string) int {
	if c.AdminUsers[username] {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// ListUsers returns all registered users, newest first. Admin only.
func (c *AuthController) ListUsers(ctx *gin.Context) {
	users := []models.User{}
	err := c.DB.Select(&users, "SELECT id, username, password, role, created_at FROM users ORDER BY id DESC")
	if err != nil {
		c.Logger.Error("Failed to list users", zap.Error(err))
		utils.InternalServerError(ctx, "failed to list users")
		return
	}
	utils.Success(ctx, gin.H{"users": users, "count": len(users)})
}

// insertUser returns the new row id. Postgres has no LastInsertId.
func (c *AuthController) insertUser(u models.User) (int, error) {
	const insert = "INSERT INTO users (username, password, role, created_at) VALUES (?, ?, ?, ?)"
	if c.DB.DriverName() == "postgres" {
		var id int
		err := c.DB.Get(&id, c.DB.Rebind(insert+" RETURNING id"), u.Username, u.Password, u.Role, u.CreatedAt)
		return id, err
	}
	result, err := c.DB.Exec(c.DB.Rebind(insert), u.Username, u.Password, u.Role, u.CreatedAt)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	return int(id), err
}

// Login checks the credentials and returns a token.
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	var user models.User
	err := c.DB.Get(&user, c.DB.Rebind("SELECT id, username, password, role, created_at FROM users WHERE username = ?"), req.Username)
	if errors.Is(err, sql.ErrNoRows) {
		utils.Unauthorized(ctx, "invalid username or password")
		return
	}
	if err != nil {
		c.Logger.Error("Failed to load user", zap.Error(err))
		utils.InternalServerError(ctx, "database query failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Unauthorized(ctx, "invalid username or password")
		return
	}

	token, err := middleware.GenerateToken(c.Secret, user.ID, user.Role, c.TokenTTL)
	if err != nil {
		utils.InternalServerError(ctx, "failed to generate token")
		return
	}

	ctx.JSON(http.StatusOK, utils.Response{
		Code:    http.StatusOK,
		Message: "login successful",
		Data: gin.H{
			"token":    token,
			"username": user.Username,
			"userId":   user.ID,
			"role":     user.Role,
		},
	})
}
