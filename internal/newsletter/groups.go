package newsletter

import (
	"context"
	"strings"

	"gamepress/internal/core"
	"gamepress/internal/logger"
)

// GroupResult is the user-facing outcome of a group operation.
type GroupResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	GroupID string `json:"groupId,omitempty"`
}

const defaultGroupColor = "#8B5CF6"

// CreateGroup adds a segmentation group. Names must have at least two
// characters and be unique ignoring case.
func (s *Service) CreateGroup(ctx context.Context, name, description, color string) GroupResult {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return GroupResult{Success: false, Message: "El nombre debe tener al menos 2 caracteres"}
	}

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		logger.Error("failed to list groups", err)
		return GroupResult{Success: false, Message: "Error al crear el grupo"}
	}
	for _, g := range groups {
		if strings.EqualFold(g.Name, name) {
			return GroupResult{Success: false, Message: "Ya existe un grupo con ese nombre"}
		}
	}

	if color == "" {
		color = defaultGroupColor
	}
	group := &core.SubscriberGroup{
		Name:        name,
		Description: strings.TrimSpace(description),
		Color:       color,
		IsDefault:   false,
	}
	id, err := s.store.CreateGroup(ctx, group)
	if err != nil {
		logger.Error("failed to create group", err, "name", name)
		return GroupResult{Success: false, Message: "Error al crear el grupo"}
	}

	return GroupResult{Success: true, Message: "Grupo creado correctamente", GroupID: id}
}

// UpdateGroup changes a group's name, description or color. Empty fields are
// left untouched, except description which may be cleared explicitly.
func (s *Service) UpdateGroup(ctx context.Context, id string, name, description, color *string) GroupResult {
	updates := make(map[string]any)
	if name != nil && strings.TrimSpace(*name) != "" {
		updates["name"] = strings.TrimSpace(*name)
	}
	if description != nil {
		updates["description"] = strings.TrimSpace(*description)
	}
	if color != nil && *color != "" {
		updates["color"] = *color
	}

	if err := s.store.UpdateGroup(ctx, id, updates); err != nil {
		logger.Error("failed to update group", err, "id", id)
		return GroupResult{Success: false, Message: "Error al actualizar el grupo"}
	}
	return GroupResult{Success: true, Message: "Grupo actualizado correctamente"}
}

// DeleteGroup removes a group and strips its id from every member. Default
// groups cannot be deleted.
func (s *Service) DeleteGroup(ctx context.Context, id string) GroupResult {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		logger.Error("failed to list groups", err)
		return GroupResult{Success: false, Message: "Error al eliminar el grupo"}
	}
	for _, g := range groups {
		if g.ID == id && g.IsDefault {
			return GroupResult{Success: false, Message: "No se pueden eliminar grupos predeterminados"}
		}
	}

	members, err := s.store.ListSubscribersByGroup(ctx, id)
	if err != nil {
		logger.Error("failed to list group members", err, "group", id)
		return GroupResult{Success: false, Message: "Error al eliminar el grupo"}
	}
	for _, member := range members {
		remaining := make([]string, 0, len(member.Groups))
		for _, g := range member.Groups {
			if g != id {
				remaining = append(remaining, g)
			}
		}
		if err := s.store.UpdateSubscriber(ctx, member.ID, map[string]any{"groups": remaining}); err != nil {
			logger.Warn("failed to remove group from subscriber", "subscriber", member.ID, "group", id, "error", err)
		}
	}

	if err := s.store.DeleteGroup(ctx, id); err != nil {
		logger.Error("failed to delete group", err, "id", id)
		return GroupResult{Success: false, Message: "Error al eliminar el grupo"}
	}
	return GroupResult{Success: true, Message: "Grupo eliminado correctamente"}
}

// defaultGroups are seeded once by config-init.
var defaultGroups = []core.SubscriberGroup{
	{Name: "General", Description: "Newsletter general", Color: "#8B5CF6"},
	{Name: "VIP", Description: "Suscriptores VIP", Color: "#F59E0B"},
	{Name: "Breaking News", Description: "Noticias urgentes", Color: "#EF4444"},
	{Name: "Weekly Top 5", Description: "Top 5 semanal", Color: "#3B82F6"},
	{Name: "Reviews", Description: "Análisis y reviews", Color: "#10B981"},
	{Name: "Torneos", Description: "Info de torneos", Color: "#EC4899"},
}

// InitializeDefaultGroups creates any missing default group. It is safe to
// run repeatedly.
func (s *Service) InitializeDefaultGroups(ctx context.Context) error {
	existing, err := s.store.ListGroups(ctx)
	if err != nil {
		return err
	}

	have := make(map[string]bool, len(existing))
	for _, g := range existing {
		have[g.Name] = true
	}

	for _, g := range defaultGroups {
		if have[g.Name] {
			continue
		}
		group := g
		group.IsDefault = true
		if _, err := s.store.CreateGroup(ctx, &group); err != nil {
			return err
		}
		logger.Info("created default group", "name", group.Name)
	}
	return nil
}
