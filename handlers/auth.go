package handlers

import (
	"net/http"
	"time"

	"github.com/Esaius2058/drive-x/services"
	"github.com/Esaius2058/drive-x/utils"

	"github.com/gin-gonic/gin"
)

type SignUpRequest struct {
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,strongpassword"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldpassword" binding:"required"`
	NewPassword string `json:"newpassword" binding:"required,strongpassword"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=client admin"`
}

func SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	out, err := getServices().Auth.SignUp(c.Request.Context(), services.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if respondServiceError(c, err) {
		return
	}
	utils.Created(c, out)
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	out, err := getServices().Auth.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func Logout(c *gin.Context) {
	token := c.GetString("token")
	expiresAt, _ := c.MustGet("token_expires_at").(time.Time)

	err := getServices().Auth.Logout(c.Request.Context(), token, expiresAt)
	if respondServiceError(c, err) {
		return
	}
	utils.Message(c, "logged out")
}

func ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	userID := c.GetUint("user_id")
	err := getServices().Auth.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword)
	if respondServiceError(c, err) {
		return
	}
	utils.Message(c, "password updated")
}

// UpdateRole runs behind the admin-secret middleware; the caller
// elevates or demotes their own account.
func UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	userID := c.GetUint("user_id")
	err := getServices().Auth.UpdateRole(c.Request.Context(), userID, req.Role)
	if respondServiceError(c, err) {
		return
	}
	utils.Message(c, "role updated")
}

func DeleteAccount(c *gin.Context) {
	userID := c.GetUint("user_id")
	err := getServices().Auth.DeleteAccount(c.Request.Context(), userID)
	if respondServiceError(c, err) {
		return
	}
	utils.Message(c, "account deleted")
}
