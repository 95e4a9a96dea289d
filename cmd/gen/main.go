package main

import (
	"dropradar/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.DropModel{},
		model.UserLocationModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
