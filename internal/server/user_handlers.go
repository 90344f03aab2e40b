package server

import (
	"skillshare/internal/models"

	"github.com/gofiber/fiber/v2"
)

const userNotFound = "User not found"

// GetUsers handles GET /users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(users), "users": users})
}

// GetMe handles GET /users/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// GetUser handles GET /users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserDetail(c.UserContext(), id)
	if err != nil {
		return respondLookupError(c, err, userNotFound)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateUser handles PUT /users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req models.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), id, req)
	if err != nil {
		return respondLookupError(c, err, userNotFound)
	}
	return c.JSON(fiber.Map{"message": "User updated 💖", "user": user})
}

// DeleteUser handles DELETE /users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.UserContext(), id); err != nil {
		return respondLookupError(c, err, userNotFound)
	}
	return c.JSON(fiber.Map{"message": "User deleted ✅"})
}

// FollowUser handles POST /users/:id/follow?followerId=
// The caller names the follower explicitly; a missing or invalid pair is a bad request.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, followerID, ok := followPair(c)
	if !ok {
		return invalidFollow(c, "Invalid follow request")
	}

	followed, err := s.followService.Follow(c.UserContext(), targetID, followerID)
	if err != nil {
		return respondAppError(c, err)
	}
	if !followed {
		return invalidFollow(c, "Invalid follow request")
	}
	return c.JSON(fiber.Map{"message": "Followed successfully 💬"})
}

// UnfollowUser handles POST /users/:id/unfollow?followerId=
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, followerID, ok := followPair(c)
	if !ok {
		return invalidFollow(c, "Invalid unfollow request")
	}

	unfollowed, err := s.followService.Unfollow(c.UserContext(), targetID, followerID)
	if err != nil {
		return respondAppError(c, err)
	}
	if !unfollowed {
		return invalidFollow(c, "Invalid unfollow request")
	}
	return c.JSON(fiber.Map{"message": "Unfollowed successfully"})
}

// GetFollowers handles GET /users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ids, err := s.followService.Followers(c.UserContext(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"followers": ids})
}

// GetFollowing handles GET /users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ids, err := s.followService.Following(c.UserContext(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"following": ids})
}

func followPair(c *fiber.Ctx) (targetID, followerID uint, ok bool) {
	targetID, ok = parseUint(c.Params("id"))
	if !ok {
		return 0, 0, false
	}
	followerID, ok = parseUint(c.Query("followerId"))
	return targetID, followerID, ok
}

func invalidFollow(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
