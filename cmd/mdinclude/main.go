package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"github.com/miorlan/mdinclude/internal/config"
	"github.com/miorlan/mdinclude/internal/infrastructure"
	"github.com/miorlan/mdinclude/internal/usecase"
)

//go:embed version.txt
var version string

func init() {
	version = strings.TrimSpace(version)
	if version == "" {
		version = "0.1.0" // fallback
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]

	// Обработка команд версии и помощи
	switch command {
	case "version", "-version", "-v", "--version":
		fmt.Fprintf(stdout, "mdinclude version %s\n", version)
		return 0

	case "help", "-help", "-h", "--help":
		printUsage(stdout)
		return 0

	case "include":
		if err := includeCmd(ctx, args[1:], stderr); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return 0
			}
			fmt.Fprintf(stderr, "❌ Ошибка: %v\n", err)
			return 1
		}
		return 0
	}

	// Неизвестная команда
	fmt.Fprintf(stderr, "❌ Неизвестная команда: %s\n\n", command)
	printUsage(stderr)
	return 1
}

func includeCmd(ctx context.Context, args []string, stderr io.Writer) error {
	var (
		inputPath  string
		outputPath string
		configPath string
		verbose    bool
		flagValues config.Config
	)
	timeout := config.Defaults().Timeout()

	flagSet := pflag.NewFlagSet("include", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&inputPath, "input", "i", "", "Путь или URL входного документа")
	flagSet.StringVarP(&outputPath, "output", "o", infrastructure.StdoutPath, "Путь к выходному файлу (- для stdout, .html рендерит Markdown)")
	flagSet.StringVarP(&configPath, "config", "c", "", "Файл конфигурации (YAML или JSON)")
	flagSet.StringVar(&flagValues.BasePath, "base-path", "", "Каталог или URL для относительных ссылок (по умолчанию каталог входного файла)")
	flagSet.StringVar(&flagValues.Encoding, "encoding", "", "Кодировка включаемых файлов (по умолчанию utf-8)")
	flagSet.DurationVar(&timeout, "timeout", timeout, "Таймаут HTTP запросов (0 - без ограничения)")
	flagSet.IntVar(&flagValues.MaxDepth, "max-depth", 0, "Максимальная глубина вложенных включений (0 - без ограничения)")
	flagSet.Int64Var(&flagValues.MaxFileSize, "max-file-size", 0, "Максимальный размер файла в байтах (0 - без ограничения)")
	flagSet.BoolVar(&flagValues.Validate, "validate", false, "Валидировать YAML/JSON результат как OpenAPI спецификацию")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "Подробный вывод")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	// Позиционный аргумент для input
	if inputPath == "" && flagSet.NArg() > 0 {
		inputPath = flagSet.Arg(0)
	}
	if inputPath == "" {
		return errors.New("необходимо указать входной файл: mdinclude include -i <input> [-o <output>]")
	}
	if inputPath == outputPath {
		return errors.New("входной и выходной файлы не могут быть одинаковыми")
	}

	cfg := config.Defaults()
	if configPath != "" {
		loaded, err := config.Load(configPath, infrastructure.NewParser())
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg = config.Merge(cfg, flagValues)
	// Явный 0 во флагах отменяет ограничение из файла конфигурации
	if flagSet.Changed("max-depth") {
		cfg.MaxDepth = flagValues.MaxDepth
	}
	if flagSet.Changed("max-file-size") {
		cfg.MaxFileSize = flagValues.MaxFileSize
	}
	if flagSet.Changed("timeout") {
		cfg.HTTPTimeout = &config.Duration{Duration: timeout}
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Check(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	progress := NewSimpleProgress(stderr, verbose)

	includer, err := newIncluder(cfg, logger)
	if err != nil {
		return err
	}

	progress.Update(fmt.Sprintf("📦 Загрузка входного файла: %s", inputPath))
	result, err := includer.Execute(ctx, inputPath, outputPath, usecase.Config{
		BasePath:    cfg.BasePath,
		Validate:    cfg.Validate,
		MaxFileSize: cfg.MaxFileSize,
		MaxDepth:    cfg.MaxDepth,
	})
	if err != nil {
		return err
	}

	if cfg.Validate {
		progress.Update("✅ Валидация пройдена")
	}
	progress.Done(outputPath, result.Lines, result.Bytes)
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `mdinclude - раскрывает директивы включения {! файл !} в текстовых документах

Использование:
  mdinclude <команда> [флаги]

Команды:
  include   Раскрыть директивы во входном документе
            Используйте 'mdinclude include --help' для справки по флагам
  version   Показать версию
  help      Показать эту справку

Синтаксис директив:
  {! path/to/file.md !}          весь файл
  {! src/main.go !tag=NAME}      строки между tag::NAME и end::NAME
  {! notes.txt !lines=3-7}       строки 3-7 (также lines=3 и lines=3,5,7)
  {! https://host/a.md !}        удаленный ресурс

Примеры:
  mdinclude include -i README.src.md -o README.md
  mdinclude include docs/index.md -o site/index.html
  mdinclude include -c mdinclude.yaml -i api.src.yaml -o api.yaml --validate

`)
}
