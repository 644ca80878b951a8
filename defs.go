package paneflow

import "fmt"

var (
	formFactories = make(map[string]FormFactory)
)

// RegisterFormFactory registers a form factory with a unique ID.
// This function should be called at application startup for all form
// kinds that flow definitions refer to.
// It will panic if a factory with the same ID is already registered.
func RegisterFormFactory(id string, factory FormFactory) {
	if _, exists := formFactories[id]; exists {
		panic(fmt.Sprintf("form factory with id '%s' is already registered", id))
	}
	formFactories[id] = factory
}

// NewFormFromRegistry creates a new Form instance from the registry
// using its factory ID. It returns an error if the ID is not found.
func NewFormFromRegistry(id string) (*Form, error) {
	factory, ok := formFactories[id]
	if !ok {
		return nil, fmt.Errorf("form factory with id '%s' not found in registry", id)
	}
	return factory(), nil
}

// FormDef is a declarative representation of a Form within a pane.
// It refers to a registered form factory by ID and can seed initial
// field values on top of the factory's defaults.
type FormDef struct {
	// Factory is the identifier of the form factory as registered
	// with RegisterFormFactory.
	Factory string `json:"factory"`
	// Initial seeds field values on the constructed form, overriding
	// the factory's defaults key by key.
	Initial FieldValues `json:"initial,omitempty"`
}

// PaneDef is a declarative representation of a Pane.
type PaneDef struct {
	// ID is the unique identifier for the pane.
	ID string `json:"id"`
	// Name is a human-readable name for the pane.
	Name string `json:"name,omitempty"`
	// Description provides details about the pane's purpose.
	Description string `json:"description,omitempty"`
	// Tags for organization and filtering.
	Tags []string `json:"tags,omitempty"`
	// Forms is an ordered list of form definitions for this pane.
	Forms []FormDef `json:"forms"`
	// InitialData contains key-value data merged into the flow store
	// when the pane mounts.
	InitialData map[string]interface{} `json:"initialData,omitempty"`
}

// FlowDef is a declarative representation of a Flow: one pane
// definition per step, in step order.
type FlowDef struct {
	// ID is the unique identifier for the flow.
	ID string `json:"id"`
	// Name is a human-readable name for the flow.
	Name string `json:"name,omitempty"`
	// Description provides details about the flow's purpose.
	Description string `json:"description,omitempty"`
	// Tags for organization and filtering.
	Tags []string `json:"tags,omitempty"`
	// Panes contains all the flow's pane definitions in step order.
	Panes []PaneDef `json:"panes"`
	// InitialStore contains key-value data loaded into the flow's
	// store before the flow starts.
	InitialStore map[string]interface{} `json:"initialStore,omitempty"`
}

// NewFlowFromDef creates a new Flow instance from a FlowDef.
// It uses the form factory registry to instantiate the forms.
func NewFlowFromDef(def *FlowDef) (*Flow, error) {
	flow := NewFlow(def.ID, def.Name, def.Description)
	flow.Tags = append(flow.Tags, def.Tags...)

	for key, value := range def.InitialStore {
		if err := flow.Store.Put(key, value); err != nil {
			return nil, fmt.Errorf("initial store key '%s': %w", key, err)
		}
	}

	for _, paneDef := range def.Panes {
		pane := NewPaneWithTags(paneDef.ID, paneDef.Name, paneDef.Description, paneDef.Tags)
		for key, value := range paneDef.InitialData {
			pane.SetInitialData(key, value)
		}

		for _, formDef := range paneDef.Forms {
			form, err := NewFormFromRegistry(formDef.Factory)
			if err != nil {
				return nil, fmt.Errorf("pane '%s': %w", paneDef.ID, err)
			}
			for key, value := range formDef.Initial {
				form.SetField(key, value)
			}
			pane.AddForm(form)
		}

		flow.AddPane(pane)
	}

	return flow, nil
}
