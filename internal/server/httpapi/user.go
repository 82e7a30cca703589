package httpapi

import (
	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/dmitrijs2005/seabattle/internal/server/models"
	"github.com/dmitrijs2005/seabattle/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

type signUpRequest struct {
	Name         string `json:"name"`
	Password     string `json:"password"`
	DisplayName  string `json:"display_name"`
	EmailAddress string `json:"email_address"`
	Notify       bool   `json:"notify"`
}

type newUserRequest struct {
	Name         string `json:"name"`
	Password     string `json:"password"`
	DisplayName  string `json:"display_name"`
	EmailAddress string `json:"email_address"`
	Admin        bool   `json:"admin"`
	Active       bool   `json:"active"`
	Notify       bool   `json:"notify"`
}

type updateUserRequest struct {
	DisplayName  string `json:"display_name"`
	EmailAddress string `json:"email_address"`
	Admin        bool   `json:"admin"`
	Active       bool   `json:"active"`
	Notify       bool   `json:"notify"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type verificationRequest struct {
	VerificationNumber uint32 `json:"verification_number"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type userResponse struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	EmailAddress string `json:"email_address"`
	Admin        bool   `json:"admin"`
	Active       bool   `json:"active"`
	Notify       bool   `json:"notify"`
}

// login exchanges Basic credentials for a bearer token.
func (s *Server) login(c *fiber.Ctx) error {
	name, password, err := basicCredentials(c)
	if err != nil {
		return fail(c, err)
	}

	result, err := s.users.Login(c.UserContext(), name, password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(authResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresIn:   result.ExpiresIn,
	})
}

func (s *Server) signup(c *fiber.Ctx) error {
	req := &signUpRequest{}
	if err := c.BodyParser(req); err != nil {
		return fail(c, common.ErrBadRequest)
	}

	err := s.users.Signup(c.UserContext(), &services.SignupRequest{
		Name:         req.Name,
		Password:     req.Password,
		DisplayName:  req.DisplayName,
		EmailAddress: req.EmailAddress,
		Notify:       req.Notify,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).SendString("User added, waiting on verification")
}

// verifySignup authenticates with Basic credentials: no bearer token exists
// before the account is activated.
func (s *Server) verifySignup(c *fiber.Ctx) error {
	name, _, err := basicCredentials(c)
	if err != nil {
		return fail(c, err)
	}

	req := &verificationRequest{}
	if err := c.BodyParser(req); err != nil {
		return fail(c, common.ErrBadRequest)
	}

	if err := s.users.VerifySignup(c.UserContext(), name, req.VerificationNumber); err != nil {
		return fail(c, err)
	}

	return c.SendString("Signup verified and activated")
}

func (s *Server) newUser(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return fail(c, err)
	}
	if _, err := s.gate.CheckAccess(token, true); err != nil {
		return fail(c, err)
	}

	req := &newUserRequest{}
	if err := c.BodyParser(req); err != nil {
		return fail(c, common.ErrBadRequest)
	}

	err = s.users.CreateUser(c.UserContext(), &services.NewUserRequest{
		Name:         req.Name,
		Password:     req.Password,
		DisplayName:  req.DisplayName,
		EmailAddress: req.EmailAddress,
		Admin:        req.Admin,
		Active:       req.Active,
		Notify:       req.Notify,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).SendString("User added")
}

func (s *Server) getUser(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return fail(c, err)
	}
	if _, err := s.gate.CheckAccess(token, true); err != nil {
		return fail(c, err)
	}

	user, err := s.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(userResponse{
		Name:         user.Name,
		DisplayName:  user.DisplayName,
		EmailAddress: user.EmailAddress,
		Admin:        user.Admin,
		Active:       user.Active,
		Notify:       user.Notify,
	})
}

func (s *Server) updateUser(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return fail(c, err)
	}
	if _, err := s.gate.CheckAccess(token, true); err != nil {
		return fail(c, err)
	}

	req := &updateUserRequest{}
	if err := c.BodyParser(req); err != nil {
		return fail(c, common.ErrBadRequest)
	}

	err = s.users.UpdateUser(c.UserContext(), &models.User{
		Name:         c.Params("id"),
		DisplayName:  req.DisplayName,
		EmailAddress: req.EmailAddress,
		Admin:        req.Admin,
		Active:       req.Active,
		Notify:       req.Notify,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.SendString("User updated")
}

func (s *Server) changePassword(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return fail(c, err)
	}

	caller, err := s.gate.CheckAccess(token, false)
	if err != nil {
		return fail(c, err)
	}

	req := &changePasswordRequest{}
	if err := c.BodyParser(req); err != nil {
		return fail(c, common.ErrBadRequest)
	}

	if err := s.users.ChangePassword(c.UserContext(), caller, c.Params("id"), req.OldPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}

	if caller.Admin {
		return c.SendString("Password changed")
	}
	return c.SendString("Please verify your password change request")
}

func (s *Server) verifyPasswordChange(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return fail(c, err)
	}

	caller, err := s.gate.CheckAccess(token, false)
	if err != nil {
		return fail(c, err)
	}

	req := &verificationRequest{}
	if err := c.BodyParser(req); err != nil {
		return fail(c, common.ErrBadRequest)
	}

	if err := s.users.VerifyPasswordChange(c.UserContext(), caller.Name, req.VerificationNumber); err != nil {
		return fail(c, err)
	}

	return c.SendString("Password change request verified. Password changed")
}
