package agent

import (
	"encoding/json"
	"fmt"
)

// Card is the public description served at /.well-known/agent.json.
type Card struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Version            string       `json:"version"`
	URL                string       `json:"url"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Capabilities       Capabilities `json:"capabilities"`
	Skills             []Skill      `json:"skills"`
	Endpoints          Endpoints    `json:"endpoints"`
}

type Capabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples,omitempty"`
}

type Endpoints struct {
	A2A    string `json:"a2a"`
	Report string `json:"report"`
	Health string `json:"health"`
}

// Version of the agent advertised in the card.
const Version = "1.0.0"

// NewCard describes the agent reachable at baseURL.
func NewCard(baseURL string) Card {
	return Card{
		Name:        "NutriGen Report Agent",
		Description: "Transforma as respostas brutas do formulário de avaliação de nutrição e fitness em um relatório estruturado com IMC, análises, plano de ação e dados para gráficos.",
		Version:     Version,
		URL:         baseURL,
		DefaultInputModes: []string{
			"text/plain",
		},
		DefaultOutputModes: []string{
			"application/json",
			"text/markdown",
		},
		Capabilities: Capabilities{},
		Skills: []Skill{
			{
				ID:          "intake-report",
				Name:        "Relatório de avaliação",
				Description: "Recebe as 26 respostas do formulário, uma por linha e na ordem oficial, e devolve o relatório completo.",
				Tags:        []string{"nutrição", "fitness", "imc", "relatório"},
				Examples:    []string{"10/07/2024 10:30:15\nJoão da Silva\n35\nMasculino\n1.80m\n95kg\n80kg\n..."},
			},
		},
		Endpoints: Endpoints{
			A2A:    baseURL + "/a2a/report",
			Report: baseURL + "/api/report",
			Health: baseURL + "/health",
		},
	}
}

// JSON encodes the card.
func (c Card) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode agent card: %w", err)
	}
	return data, nil
}
