// modelcheck 校验模型文件：检查格式与特征schema，并用默认输入跑一次探针预测
package main

import (
	"errors"
	"fmt"
	"os"

	"silicapred/ml"
)

func main() {
	path := "modelo.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	loader := ml.NewLoader(1)
	handle, err := loader.Load(path)
	if err != nil {
		var loadErr *ml.LoadError
		if errors.As(err, &loadErr) {
			fmt.Fprintf(os.Stderr, "modelcheck: %s: %s (%v)\n", path, loadErr.Kind, loadErr.Err)
		} else {
			fmt.Fprintf(os.Stderr, "modelcheck: %s: %v\n", path, err)
		}
		os.Exit(1)
	}

	model := handle.Model()
	fmt.Printf("artifact: %s\n", path)
	fmt.Printf("format:   %s\n", ml.ArtifactFormat)
	if gbt, ok := model.(*ml.GBTree); ok {
		fmt.Printf("trees:    %d\n", gbt.TreeCount())
	}
	for i, column := range model.Columns() {
		fmt.Printf("column %d: %s\n", i, column)
	}

	value, err := ml.Predict(handle,
		ml.Schema[0].Default,
		ml.Schema[1].Default,
		ml.Schema[2].Default,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "modelcheck: probe prediction failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("probe:    %.2f%% (iron=%v air=%v amine=%v)\n",
		value, ml.Schema[0].Default, ml.Schema[1].Default, ml.Schema[2].Default)
}
