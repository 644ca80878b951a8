package paneflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormState(t *testing.T) {
	t.Run("set_field_preserves_other_keys", func(t *testing.T) {
		form := NewForm(FormConfig{
			ID:      "user",
			Initial: FieldValues{"firstname": "Ada", "lastname": "Lovelace"},
		})

		form.SetField("firstname", "Grace")

		assert.Equal(t, FieldValues{
			"firstname": "Grace",
			"lastname":  "Lovelace",
		}, form.Values())
	})

	t.Run("set_field_is_idempotent", func(t *testing.T) {
		form := NewForm(FormConfig{ID: "user", Initial: FieldValues{"name": "Ada"}})

		form.SetField("name", "Grace")
		form.SetField("name", "Grace")

		assert.Equal(t, FieldValues{"name": "Grace"}, form.Values())
	})

	t.Run("set_field_adds_new_keys", func(t *testing.T) {
		form := NewForm(FormConfig{ID: "user"})

		form.SetField("email", "ada@example.com")

		assert.Equal(t, FieldValues{"email": "ada@example.com"}, form.Values())
	})

	t.Run("values_returns_a_copy", func(t *testing.T) {
		form := NewForm(FormConfig{ID: "user", Initial: FieldValues{"name": "Ada"}})

		values := form.Values()
		values["name"] = "mutated"

		assert.Equal(t, FieldValues{"name": "Ada"}, form.Values())
	})

	t.Run("initial_values_are_copied", func(t *testing.T) {
		initial := FieldValues{"name": "Ada"}
		form := NewForm(FormConfig{ID: "user", Initial: initial})

		initial["name"] = "mutated"

		assert.Equal(t, FieldValues{"name": "Ada"}, form.Values())
	})

	t.Run("on_change_notification", func(t *testing.T) {
		var changes []string
		form := NewForm(FormConfig{
			ID: "user",
			OnChange: func(key, value string) {
				changes = append(changes, key+"="+value)
			},
		})

		form.SetField("name", "Ada")
		form.SetField("email", "ada@example.com")

		assert.Equal(t, []string{"name=Ada", "email=ada@example.com"}, changes)
	})

	t.Run("generated_id_when_empty", func(t *testing.T) {
		form := NewForm(FormConfig{})
		assert.NotEmpty(t, form.ID())

		other := NewForm(FormConfig{})
		assert.NotEqual(t, form.ID(), other.ID())
	})
}

func TestFormMountLifecycle(t *testing.T) {
	t.Run("mount_registers_with_pane", func(t *testing.T) {
		pane := NewPane("checkout", "Checkout", "")
		form := NewForm(FormConfig{ID: "payment"})

		form.Mount(pane)

		assert.True(t, form.Mounted())
		assert.Equal(t, []string{"payment"}, pane.FormIDs())
	})

	t.Run("unmount_deregisters", func(t *testing.T) {
		pane := NewPane("checkout", "Checkout", "")
		form := NewForm(FormConfig{ID: "payment"})

		form.Mount(pane)
		form.Unmount()

		assert.False(t, form.Mounted())
		assert.Empty(t, pane.FormIDs())
	})

	t.Run("unmount_without_mount_is_noop", func(t *testing.T) {
		form := NewForm(FormConfig{ID: "payment"})
		assert.NotPanics(t, func() { form.Unmount() })
	})

	t.Run("remount_onto_another_pane", func(t *testing.T) {
		first := NewPane("step-one", "One", "")
		second := NewPane("step-two", "Two", "")
		form := NewForm(FormConfig{ID: "payment"})

		form.Mount(first)
		form.Mount(second)

		assert.Empty(t, first.FormIDs())
		assert.Equal(t, []string{"payment"}, second.FormIDs())
	})

	t.Run("mounted_form_submits_current_values", func(t *testing.T) {
		var submitted FieldValues
		pane := NewPane("checkout", "Checkout", "")
		form := NewForm(FormConfig{
			ID:      "payment",
			Initial: FieldValues{"card": ""},
			OnSubmit: func(ctx context.Context, values FieldValues) error {
				submitted = values
				return nil
			},
		})

		form.Mount(pane)
		form.SetField("card", "4242")

		require.NoError(t, pane.Submit(context.Background()))
		assert.Equal(t, FieldValues{"card": "4242"}, submitted)
	})
}
