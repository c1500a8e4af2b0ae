package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"easyinventory/internal/controller"
	"easyinventory/internal/views"
)

var errQuit = errors.New("quit")

const helpText = `Comandos:
  spaces                 volta para a lista de espaços
  open <n>               abre o espaço n
  back                   volta para a lista
  search [termo]         filtra os itens por nome ou categoria
  new-space              abre o formulário de espaço
  add-item               abre o formulário de item
  set <campo> <valor>    altera um campo do formulário aberto
  save                   envia o formulário aberto
  cancel                 fecha o formulário aberto
  qty <n> <quantidade>   altera a quantidade do item n
  rm-item <n>            remove o item n
  rm-space <n>           remove o espaço n
  retry                  tenta carregar os espaços de novo
  help                   mostra esta ajuda
  quit                   sai`

// Shell traduz linhas digitadas em intenções do controller.
type Shell struct {
	ctrl     *controller.Controller
	renderer *views.Renderer
	out      io.Writer
	warn     *color.Color
}

// NewShell cria o shell escrevendo em out.
func NewShell(ctrl *controller.Controller, out io.Writer, colored bool) *Shell {
	warn := color.New(color.FgYellow)
	if !colored {
		warn.DisableColor()
	}
	return &Shell{
		ctrl:     ctrl,
		renderer: views.NewRenderer(out, colored),
		out:      out,
		warn:     warn,
	}
}

// Run lê comandos de in até EOF ou 'quit', redesenhando a tela após cada um.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	s.ctrl.Mount(ctx)
	s.renderer.Render(s.ctrl)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "\n> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		err := s.Exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.warn.Fprintln(s.out, err)
			continue
		}
		fmt.Fprintln(s.out)
		s.renderer.Render(s.ctrl)
	}
}

// Exec executa uma linha de comando.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	st := s.ctrl.State()

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "retry":
		s.ctrl.Retry(ctx)
	case "spaces", "back":
		s.ctrl.Back()
	case "open":
		n, err := index(args, len(st.Spaces), "espaço")
		if err != nil {
			return err
		}
		s.ctrl.SelectSpace(ctx, st.Spaces[n])
	case "search":
		s.ctrl.SetSearch(strings.Join(args, " "))
	case "new-space":
		s.ctrl.OpenCreateSpace()
	case "add-item":
		if st.Current == nil {
			return errors.New("abra um espaço antes de adicionar itens")
		}
		s.ctrl.OpenAddItem()
	case "set":
		return s.set(args)
	case "save":
		return s.save(ctx)
	case "cancel":
		s.ctrl.CloseCreateSpace()
		s.ctrl.CloseAddItem()
	case "qty":
		items := s.ctrl.FilteredItems()
		n, err := index(args, len(items), "item")
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return errors.New("uso: qty <n> <quantidade>")
		}
		q, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantidade inválida: %s", args[1])
		}
		s.ctrl.UpdateQuantity(ctx, items[n].ID, q)
	case "rm-item":
		items := s.ctrl.FilteredItems()
		n, err := index(args, len(items), "item")
		if err != nil {
			return err
		}
		s.ctrl.DeleteItem(ctx, items[n].ID)
	case "rm-space":
		n, err := index(args, len(st.Spaces), "espaço")
		if err != nil {
			return err
		}
		s.ctrl.DeleteSpace(ctx, st.Spaces[n].ID)
	default:
		return fmt.Errorf("comando desconhecido: %s (digite 'help')", cmd)
	}
	return nil
}

func (s *Shell) set(args []string) error {
	if len(args) < 1 {
		return errors.New("uso: set <campo> <valor>")
	}
	value := strings.Join(args[1:], " ")

	st := s.ctrl.State()
	switch {
	case st.ShowAddItem:
		return s.ctrl.SetItemField(args[0], value)
	case st.ShowCreateSpace:
		return s.ctrl.SetSpaceField(args[0], value)
	}
	return errors.New("nenhum formulário aberto")
}

func (s *Shell) save(ctx context.Context) error {
	st := s.ctrl.State()
	switch {
	case st.ShowAddItem:
		if st.ItemForm.Name == "" || st.ItemForm.Category == "" {
			return errors.New("name e category são obrigatórios")
		}
		s.ctrl.AddItem(ctx)
	case st.ShowCreateSpace:
		if st.SpaceForm.Name == "" || st.SpaceForm.Location == "" {
			return errors.New("name e location são obrigatórios")
		}
		s.ctrl.CreateSpace(ctx)
	default:
		return errors.New("nenhum formulário aberto")
	}
	return nil
}

// index converte o primeiro argumento (1-based) em posição de uma lista de tamanho size.
func index(args []string, size int, what string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("informe o número do %s", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > size {
		return 0, fmt.Errorf("%s inválido: %s", what, args[0])
	}
	return n - 1, nil
}
