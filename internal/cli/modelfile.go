package cli

import (
	"fmt"

	"github.com/mirqab/mirqab/internal/ollama"
	"github.com/mirqab/mirqab/internal/ui"
)

// modelfileCommand generates a Modelfile for 'ollama create'.
func modelfileCommand() error {
	mf := ollama.Modelfile{
		From:    modelfileBaseFlag,
		System:  modelfileSystemFlag,
		Adapter: modelfileAdapterFlag,
	}
	if err := mf.Validate(); err != nil {
		return err
	}

	if modelfileOutputFlag == "-" {
		fmt.Print(mf.Render())
		return nil
	}

	if err := mf.WriteFile(modelfileOutputFlag); err != nil {
		return err
	}

	if !Quiet() {
		fmt.Printf("%s Wrote %s\n", ui.SymbolSuccess, modelfileOutputFlag)
		fmt.Println("\nCreate the model with:")
		fmt.Printf("  ollama create my-arabic-model -f %s\n", modelfileOutputFlag)
	}
	return nil
}
