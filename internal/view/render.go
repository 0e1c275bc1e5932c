package view

import (
	"strconv"

	"github.com/dtg01100/video-browser/internal/format"
	"github.com/dtg01100/video-browser/internal/interaction"
	"github.com/dtg01100/video-browser/internal/models"
	"github.com/rs/zerolog"
)

// Controller is what rendered fragments forward their events to.
type Controller interface {
	Dispatch(action interaction.Action, target, value string)
	SwitchChanged(key string, checked bool) interaction.ColorToken
}

// Renderer projects entity collections into document containers.
type Renderer struct {
	doc    *Document
	ctrl   Controller
	logger zerolog.Logger
}

// NewRenderer creates a renderer writing into doc.
func NewRenderer(doc *Document, ctrl Controller, logger zerolog.Logger) *Renderer {
	return &Renderer{doc: doc, ctrl: ctrl, logger: logger}
}

// Document returns the document the renderer writes into.
func (r *Renderer) Document() *Document {
	return r.doc
}

// RenderVideoCards replaces the content of containerID with one card per
// video. A missing container is ignored.
func (r *Renderer) RenderVideoCards(containerID string, videos []models.Video) {
	c, ok := r.doc.Container(containerID)
	if !ok {
		return
	}

	fragments := make([]Fragment, 0, len(videos))
	for _, v := range videos {
		fragments = append(fragments, Fragment{
			Kind:      KindVideoCard,
			EntityID:  v.ID,
			Title:     v.Title,
			Meta:      string(v.Category) + " • " + format.ViewCount(v.Views),
			Detail:    v.Duration,
			Thumbnail: v.Thumbnail,
			FadeIn:    true,
		})
	}

	c.replace(fragments, r.handleVideoEvent)
	r.logger.Debug().Str("container", containerID).Int("fragments", len(fragments)).Msg("rendered videos")
}

// RenderSourceList replaces the content of containerID with one card per
// source, each carrying edit and delete buttons. A missing container is
// ignored.
func (r *Renderer) RenderSourceList(containerID string, sources []models.Source) {
	c, ok := r.doc.Container(containerID)
	if !ok {
		return
	}

	fragments := make([]Fragment, 0, len(sources))
	for _, s := range sources {
		f := Fragment{
			Kind:     KindSourceCard,
			EntityID: s.ID,
			Title:    s.Name,
			Detail:   s.URL,
			Buttons: []Button{
				{Target: TargetEdit, Label: "Edit"},
				{Target: TargetDelete, Label: "Delete"},
			},
			FadeIn: true,
		}
		if s.IsDefault {
			f.Badge = "Default"
		}
		fragments = append(fragments, f)
	}

	c.replace(fragments, r.handleSourceEvent)
	r.logger.Debug().Str("container", containerID).Int("fragments", len(fragments)).Msg("rendered sources")
}

// RenderSettings replaces the content of containerID with one row per
// setting. Unknown setting types get a row without a control. A missing
// container is ignored.
func (r *Renderer) RenderSettings(containerID string, settings []models.SettingItem) {
	c, ok := r.doc.Container(containerID)
	if !ok {
		return
	}

	fragments := make([]Fragment, 0, len(settings))
	for _, s := range settings {
		fragments = append(fragments, Fragment{
			Kind:     KindSetting,
			EntityID: s.Key,
			Title:    s.Label,
			Control:  controlFor(s),
			FadeIn:   true,
		})
	}

	c.replace(fragments, r.handleSettingEvent)
	r.logger.Debug().Str("container", containerID).Int("fragments", len(fragments)).Msg("rendered settings")
}

func controlFor(s models.SettingItem) *Control {
	switch s.Type {
	case models.SettingBoolean:
		return &Control{Type: s.Type, Checked: s.Bool()}
	case models.SettingSelect:
		current := s.StringValue()
		options := make([]Option, len(s.Options))
		for i, o := range s.Options {
			options[i] = Option{Value: o, Selected: o == current}
		}
		return &Control{Type: s.Type, Options: options}
	case models.SettingText, models.SettingNumber:
		return &Control{Type: s.Type, Value: s.StringValue()}
	default:
		return nil
	}
}

func (r *Renderer) handleVideoEvent(f *Fragment, ev Event) {
	if ev.Type != EventClick {
		return
	}
	r.ctrl.Dispatch(interaction.ActionPlayVideo, f.EntityID, "")
}

func (r *Renderer) handleSourceEvent(f *Fragment, ev Event) {
	if ev.Type != EventClick {
		return
	}
	switch ev.Target {
	case TargetEdit:
		r.ctrl.Dispatch(interaction.ActionUpdateSource, f.EntityID, "")
	case TargetDelete:
		r.ctrl.Dispatch(interaction.ActionDeleteSource, f.EntityID, "")
	case TargetCard:
		r.ctrl.Dispatch(interaction.ActionSwitchSource, f.EntityID, "")
	}
}

// handleSettingEvent applies a change to the control, the way a form widget
// keeps its own state, then forwards the key and new value.
func (r *Renderer) handleSettingEvent(f *Fragment, ev Event) {
	if ev.Type != EventChange || f.Control == nil {
		return
	}

	ctl := f.Control
	switch ctl.Type {
	case models.SettingBoolean:
		checked, err := strconv.ParseBool(ev.Value)
		if err != nil {
			return
		}
		ctl.Checked = checked
		r.ctrl.SwitchChanged(f.EntityID, checked)
		r.ctrl.Dispatch(interaction.ActionUpdateSetting, f.EntityID, strconv.FormatBool(checked))
	case models.SettingSelect:
		found := false
		for _, o := range ctl.Options {
			if o.Value == ev.Value {
				found = true
				break
			}
		}
		if !found {
			return
		}
		for i := range ctl.Options {
			ctl.Options[i].Selected = ctl.Options[i].Value == ev.Value
		}
		r.ctrl.Dispatch(interaction.ActionUpdateSetting, f.EntityID, ev.Value)
	case models.SettingText, models.SettingNumber:
		ctl.Value = ev.Value
		r.ctrl.Dispatch(interaction.ActionUpdateSetting, f.EntityID, ev.Value)
	}
}
