package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/openfolio/rebalance"
	"github.com/openfolio/rebalance/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

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

			Learn about the expert's skills that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the trades proposed to rebalance his accounts
			toward a target allocation: what is sold, what is bought, the realized gains and the
			estimated taxes. Devise a plan of questions to each expert and come up with the best
			response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns an expert grounded on Google Search, for questions about
// markets, funds and identifiers beyond the portfolio data itself.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products and institutions and of
		the latest news about funds and companies.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in markets. You can search and find anything related to
			financial institutions, companies, markets and funds. You leverage Google Search
			to ground your assertions, and you know how to relate the latest news to the
			user's request.
				`}}},
		},
	}
}

// NewPlanner returns the expert in charge of the user's holdings and trade
// plans, equipped with function tools over the holdings and targets files.
func NewPlanner(holdingsFile, targetsFile string) *Expert {
	lib := []Function{
		holdingsTool(holdingsFile),
		tradePlanTool(holdingsFile, targetsFile),
	}

	return &Expert{
		Name: "Planner",
		Description: `This is the Planner. He is in charge of reading the user's holdings and
		computing the rebalancing trade plan for any volatility band: trades, residual cash,
		realized gains and estimated taxes.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are in charge of the user's multi-account portfolio.
				Use the available tools to read the current holdings and to compute the
				trade plan toward a target volatility band. Accounts never exchange
				assets; every figure is per account. Pardon the user's approximative
				language and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func holdingsTool(holdingsFile string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Holdings",
			Description: `Holdings lists every account's positions, cash and equity.`,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted holdings report, one section per account.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			holdings, err := decodeHoldings(holdingsFile)
			if err != nil {
				return failure(id, "Holdings", err)
			}
			accounts, err := rebalance.Accounts(holdings, nil)
			if err != nil {
				return failure(id, "Holdings", err)
			}
			return success(id, "Holdings", renderer.HoldingsMarkdown(accounts))
		},
	}
}

func tradePlanTool(holdingsFile, targetsFile string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "TradePlan",
			Description: `TradePlan computes the trades that move every account toward the
			target mix of a volatility band, with residual cash and estimated taxes.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"band": {
						Type:        genai.TypeInteger,
						Description: "The volatility band tag, e.g. 8 for the 8% band.",
					},
				},
				Required: []string{"band"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted trade report, one section per account, plus residual cash.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			band, err := parseBand(args)
			if err != nil {
				return failure(id, "TradePlan", err)
			}
			holdings, err := decodeHoldings(holdingsFile)
			if err != nil {
				return failure(id, "TradePlan", err)
			}
			targets, err := decodeTargets(targetsFile)
			if err != nil {
				return failure(id, "TradePlan", err)
			}
			plan, err := rebalance.NewEngine(targets).BuildTrades(holdings, nil, band)
			if err != nil {
				return failure(id, "TradePlan", err)
			}
			report := renderer.TradesMarkdown(plan) + "\n" + renderer.ResidualsMarkdown(plan.Residuals)
			return success(id, "TradePlan", report)
		},
	}
}

func parseBand(args map[string]any) (int, error) {
	iband, ok := args["band"]
	if !ok {
		return 0, fmt.Errorf("argument 'band' is required")
	}
	// genai delivers JSON numbers as float64
	fband, ok := iband.(float64)
	if !ok {
		return 0, fmt.Errorf("argument 'band' is not a number as expected but %T", iband)
	}
	return int(fband), nil
}

func decodeHoldings(name string) ([]rebalance.Holding, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open holdings file %q: %w", name, err)
	}
	defer f.Close()
	return rebalance.DecodeHoldings(f)
}

func decodeTargets(name string) (*rebalance.TargetTable, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open targets file %q: %w", name, err)
	}
	defer f.Close()
	return rebalance.DecodeTargetTable(f)
}
