package server

import (
	"skillshare/internal/repository"
	"skillshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// planHandlers serves one kind of plan. label names the kind in messages,
// e.g. "Meal Plan created ✅".
type planHandlers[T repository.PlanModel] struct {
	server *Server
	svc    *service.PlanService[T]
	label  string
}

// registerPlanRoutes installs create, list, per-user list, get, update and
// delete for a plan kind under r.
func registerPlanRoutes[T repository.PlanModel](s *Server, r fiber.Router, svc *service.PlanService[T], label string) {
	h := &planHandlers[T]{server: s, svc: svc, label: label}
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/user/:userId", h.listByUser)
	r.Get("/:id", h.get)
	r.Put("/:id", h.update)
	r.Delete("/:id", h.delete)
}

func (h *planHandlers[T]) create(c *fiber.Ctx) error {
	plan := new(T)
	if err := parseBody(c, plan); err != nil {
		return nil
	}

	created, err := h.svc.Create(c.UserContext(), plan)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": h.label + " created ✅", "plan": created})
}

func (h *planHandlers[T]) list(c *fiber.Ctx) error {
	plans, err := h.svc.List(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(plans), "plans": plans})
}

func (h *planHandlers[T]) listByUser(c *fiber.Ctx) error {
	userID, err := h.server.parseID(c, "userId")
	if err != nil {
		return nil
	}

	plans, err := h.svc.ListByUser(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(plans), "plans": plans})
}

func (h *planHandlers[T]) get(c *fiber.Ctx) error {
	id, err := h.server.parseID(c, "id")
	if err != nil {
		return nil
	}

	plan, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return respondLookupError(c, err, h.label+" not found")
	}
	return c.JSON(fiber.Map{"plan": plan})
}

func (h *planHandlers[T]) update(c *fiber.Ctx) error {
	id, err := h.server.parseID(c, "id")
	if err != nil {
		return nil
	}

	in := new(T)
	if err := parseBody(c, in); err != nil {
		return nil
	}

	updated, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondLookupError(c, err, h.label+" not found")
	}
	return c.JSON(fiber.Map{"message": h.label + " updated ✅", "plan": updated})
}

func (h *planHandlers[T]) delete(c *fiber.Ctx) error {
	id, err := h.server.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": h.label + " deleted ✅"})
}
