package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/nefay/licspend"
	"github.com/nefay/licspend/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// StoreLoader loads the current record store for the analyst's tools.
type StoreLoader func() (*licspend.RecordStore, error)

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user manages software licensing for a company: publishers, contracts, spend,
			renewals, savings and compliance risks. Check the dashboard first to understand
			what publishers and figures he is talking about.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounding answers in web search, for
// questions about publishers, pricing and licensing news.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher on the software industry.
		Very well aware of software publishers, their products, licensing models and pricing,
		and the latest vendor news. Ask the Researcher whenever you need recent or grounding
		information about a publisher.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in the software industry: publishers, products, licensing models,
			pricing and acquisitions. You leverage Google Search to ground your assertions in a
			solid truth, and you know how to relate vendor news to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the licensing analyst: the expert in charge of the
// user's licensing data, answering through the dashboard's aggregate views.
func NewAnalyst(load StoreLoader) *Expert {
	lib := []Function{
		newDashboardFunc(load),
		newPublishersFunc(load),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the licensing Analyst. He is in charge of reading the user's
		licensing data: publishers, spend, savings, risks, renewals and compliance.
		He can compute every dashboard figure on any date.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's software licensing data.
				You know how to use the Tools to extract relevant figures: spend totals,
				savings by type, risk counts, upcoming renewals and compliance buckets.
				You are part of a team of experts; pardon their approximative language
				and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func newDashboardFunc(load StoreLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Dashboard",
			Description: `Dashboard computes every aggregate view of the licensing data on a
			given date: key figures, savings by type, risk tracking, upcoming renewals and
			compliance health.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: "The reference date, YYYY-MM-DD. Today is the default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted dashboard report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDateArg(args)
			if err != nil {
				return errorResponse(id, "Dashboard", err)
			}
			s, err := load()
			if err != nil {
				return errorResponse(id, "Dashboard", err)
			}
			var b strings.Builder
			renderer.RenderDashboard(&b, licspend.ComputeAllOn(s, on))
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Dashboard",
				Response: map[string]any{
					"output": b.String(),
				},
			}
		},
	}
}

func newPublishersFunc(load StoreLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Publishers",
			Description: `Publishers lists every publisher with its id, contract title,
			delivery type, contact, renewal date, status and savings.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all publishers.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := load()
			if err != nil {
				return errorResponse(id, "Publishers", err)
			}
			var b strings.Builder
			renderer.RenderPublishers(&b, s, licspend.DefaultFieldConfiguration())
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Publishers",
				Response: map[string]any{
					"output": b.String(),
				},
			}
		},
	}
}

func parseDateArg(args map[string]any) (licspend.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return licspend.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return licspend.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	date, err := licspend.ParseDate(sdate)
	if err != nil {
		return licspend.Today(), fmt.Errorf("argument 'date' must be a valid YYYY-MM-DD date, got %q", sdate)
	}
	return date, nil
}
