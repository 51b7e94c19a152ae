package cmd

import (
	"flag"

	"github.com/findash/holdings/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors overrides the prediction of a flag value, by flag name.
var flagPredictors = map[string]complete.Predictor{
	"db":        predict.Files("*.db"),
	"exports":   predict.Dirs("*"),
	"reports":   predict.Dirs("*"),
	"o":         predict.Files("*"),
	"f":         predict.Set(reportFormats),
	"log-level": predict.Set{"debug", "info", "warn", "error"},
}

// argPredictors predicts the arguments of a subcommand, by subcommand name.
var argPredictors = map[string]complete.Predictor{
	"import":  predict.Files("*.csv"),
	"restore": predict.Files("*.jsonl"),
	"topic":   topicPredictor(),
}

func topicPredictor() complete.Predictor {
	return predict.Set(append(docs.Names(), docs.All))
}

// Completion returns the shell completion of the application, with 'global' the flag set
// of the global flags.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(global),
	}
	for _, g := range Commands() {
		for _, c := range g.Commands {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			args, ok := argPredictors[c.Name()]
			if !ok {
				args = predict.Nothing
			}
			root.Sub[c.Name()] = &complete.Command{Flags: predictFlags(fs), Args: args}
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{Args: predict.Nothing}
	}
	return root
}

// predictFlags returns the predictor of every flag of 'fs'.
func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
