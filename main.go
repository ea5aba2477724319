package main

import (
	"github.com/bloggapi/blogg/config"
	"github.com/bloggapi/blogg/models"
	"github.com/bloggapi/blogg/routes"
	"github.com/bloggapi/blogg/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(cfg,
		&models.User{},
		&models.Role{},
		&models.RoleClaim{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	)

	r := routes.SetupRouter(cfg, db)

	utils.Sugar.Infof("starting blogg API on port %s", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
