package bots

import (
	"github.com/notnil/chess"
)

// Preset builds a configured bot for one side of a game.
type Preset struct {
	Name string
	New  func(color chess.Color, opts ...Option) ChessBot
}

func greedy(name string, eval Evaluator) Preset {
	return Preset{Name: name, New: func(color chess.Color, opts ...Option) ChessBot {
		return NewGreedyBot(color, eval, append([]Option{WithName(name)}, opts...)...)
	}}
}

// searching builds a MinimaxBot preset. Opponent-relative evaluators need an
// even depth so the opponent is on move at the horizon.
func searching(name string, eval Evaluator, depth int) Preset {
	return Preset{Name: name, New: func(color chess.Color, opts ...Option) ChessBot {
		return NewMinimaxBot(color, eval, depth, append([]Option{WithName(name)}, opts...)...)
	}}
}

var presets = []Preset{
	{Name: "Random", New: func(_ chess.Color, opts ...Option) ChessBot {
		return NewRandomBot(append([]Option{WithName("Random")}, opts...)...)
	}},
	greedy("Matching", MatchingColors),
	greedy("Opposite", OppositeColors),
	greedy("Pacifist", Pacifist),
	{Name: "First", New: func(_ chess.Color, opts ...Option) ChessBot {
		return NewFirstBot(append([]Option{WithName("First")}, opts...)...)
	}},
	{Name: "Alphabetical", New: func(_ chess.Color, opts ...Option) ChessBot {
		return NewAlphabeticalBot(append([]Option{WithName("Alphabetical")}, opts...)...)
	}},
	greedy("Huddle", Huddle),
	greedy("Swarm", Swarm),
	greedy("Generous", Generous),
	greedy("I Insist 2", Insist2),
	greedy("I Insist 3", Insist3),
	searching("Matching Search 2", MatchingColors, 2),
	searching("Huddle Search 2", Huddle, 2),
	searching("Swarm Search 2", Swarm, 2),
	searching("Pacifist Search 3", Pacifist, 3),
	searching("Generous Search 2", Generous, 2),
}

// Presets returns the registered presets in menu order.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

func Lookup(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
