// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/meta"
)

const bashCompletionScript = `# bash completion for cartctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_cartctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "add inc dec ls list clear completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"
    local storage="--backend -b --dir --db --bucket --prefix --region --profile --endpoint --addr --password --redis-db --slot --retries"

    case "$cmd" in
        add)
            local opts="$common $storage --id --title --image --price --quiet -q"
            ;;
        inc|dec)
            local opts="$common $storage --quiet -q"
            ;;
        clear)
            local opts="$common $storage --all --quiet -q"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common $storage"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --backend|-b)
            COMPREPLY=( $(compgen -W "file memory sqlite s3 redis" -- "$cur") )
            return 0
            ;;
        --dir)
            COMPREPLY=( $(compgen -d -- "$cur") )
            return 0
            ;;
        --db)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _cartctl cartctl
`

const zshCompletionScript = `#compdef cartctl

_cartctl() {
  local -a cmds
  cmds=(
    'add:add a product to the cart'
    'inc:increase product quantities'
    'dec:decrease product quantities'
    'ls:list the products in the cart'
    'clear:empty the cart'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  '(-b --backend)'{-b,--backend}'[storage backend]:backend:(file memory sqlite s3 redis)'
  '--dir[file backend directory]:dir:_directories'
  '--db[sqlite database]:file:_files'
  '--bucket[s3 bucket]:bucket'
  '--prefix[s3 key prefix]:prefix'
  '--region[aws region]:region'
  '--profile[aws profile]:profile'
  '--endpoint[s3 endpoint]:url'
  '--addr[redis address]:addr'
  '--password[redis password]:password'
  '--redis-db[redis database]:db'
  '--slot[storage key]:slot'
  '--retries[persist attempts]:retries'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'cartctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    add)
      _arguments -C \
        $common \
        '--id[product id]:id' \
        '--title[product title]:title' \
        '--image[image url]:url' \
        '--price[unit price]:price' \
        '(-q --quiet)'{-q,--quiet}'[do not print the cart]'
      ;;
    inc|dec)
      _arguments -C \
        $common \
        '(-q --quiet)'{-q,--quiet}'[do not print the cart]' \
        '*:product id'
      ;;
    clear)
      _arguments -C \
        $common \
        '--all[wipe the storage backend]' \
        '(-q --quiet)'{-q,--quiet}'[do not print the cart]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _cartctl cartctl
`

func CompletionCommandAction(_ context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: cartctl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "cartctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
