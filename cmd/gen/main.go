package main

import (
	"toolbox/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/query",
	})

	gen.ApplyBasic(model.All()...)

	gen.Execute()
}
