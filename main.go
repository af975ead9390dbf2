package main

import (
	"os"
	"os/signal"
	"syscall"

	"deltaproje.app/configs"
	"deltaproje.app/configs/configsdatabase"
	"deltaproje.app/configs/configslog"
	"deltaproje.app/database"
	"deltaproje.app/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.Load()
	configsdatabase.InitDB(cfg)
	defer configsdatabase.CloseDB()

	db := configsdatabase.GetDB()
	database.Initialize(db, true, false)

	app := fiber.New(fiber.Config{
		AppName: "DELTA PROJE Görev Formu",
	})
	routes.SetupRoutes(app, db)

	go func() {
		configslog.SLog.Infof("Sunucu %s adresinde dinliyor...", cfg.ListenAddr)
		if err := app.Listen(cfg.ListenAddr); err != nil {
			configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
	if err := app.Shutdown(); err != nil {
		configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
	}
	configslog.SLog.Info("Sunucu durduruldu.")
}
