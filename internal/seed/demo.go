// Package seed populates a backend with demo data for local development and
// screenshots.
package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/gmorais/backoffice/internal/store"
)

// Demo inserts a small set of related records: clientes, produtos and
// pedidos. Sequential codes are left null so the backend assigns them.
func Demo(ctx context.Context, backend store.Backend) error {
	clientes := []string{
		`{"codigo_cliente": null, "nome": "Maria Silva", "cpf_cnpj": "123.456.789-00", "tipo": "PF",
		  "email": "maria.silva@example.com", "telefone": "(81) 99876-5432", "cep": "50710-000",
		  "cidade": "Recife", "estado": "PE", "valor_limite": 5000.0, "ativo": true,
		  "data_cadastro": "15/01/2026", "observacao": "Cliente desde 2020."}`,
		`{"codigo_cliente": null, "nome": "Comercial Andrade LTDA", "cpf_cnpj": "12.345.678/0001-90",
		  "tipo": "PJ", "email": "contato@andrade.example.com", "telefone": "(11) 3456-7890",
		  "cep": "01310-100", "cidade": "São Paulo", "estado": "SP", "valor_limite": 25000.0,
		  "ativo": true, "data_cadastro": "03/02/2026", "observacao": ""}`,
		`{"codigo_cliente": null, "nome": "José Souza", "cpf_cnpj": "987.654.321-00", "tipo": "PF",
		  "email": "jose.souza@example.com", "telefone": "(21) 98765-4321", "cep": "22041-011",
		  "cidade": "Rio de Janeiro", "estado": "RJ", "valor_limite": 1500.0, "ativo": false,
		  "data_cadastro": "20/02/2026", "observacao": "Cadastro suspenso a pedido."}`,
	}
	produtos := []string{
		`{"codigo_produto": null, "descricao": "Caderno universitário 96 folhas", "unidade": "UN",
		  "valor_unitario": 12.9, "estoque": 240, "ativo": true}`,
		`{"codigo_produto": null, "descricao": "Caneta esferográfica azul", "unidade": "CX",
		  "valor_unitario": 38.5, "estoque": 57, "ativo": true}`,
		`{"codigo_produto": null, "descricao": "Papel A4 75g resma", "unidade": "RM",
		  "valor_unitario": 27.4, "estoque": 310, "ativo": true}`,
	}
	pedidos := []string{
		`{"codigo_pedido": null, "cliente_id": 1, "data_pedido": "10/03/2026", "status": "faturado",
		  "valor_total": 164.3, "observacao": ""}`,
		`{"codigo_pedido": null, "cliente_id": 2, "data_pedido": "12/03/2026", "status": "pendente",
		  "valor_total": 1925.0, "observacao": "Entrega agendada para a filial."}`,
	}

	for _, group := range []struct {
		entity string
		raws   []string
	}{
		{"clientes", clientes},
		{"produtos", produtos},
		{"pedidos", pedidos},
	} {
		entity, raws := group.entity, group.raws
		for _, raw := range raws {
			rec := store.NewRecord()
			if err := rec.UnmarshalJSON([]byte(raw)); err != nil {
				return fmt.Errorf("seed: parse %s record: %w", entity, err)
			}
			if _, err := backend.Create(ctx, entity, rec); err != nil {
				return fmt.Errorf("seed: create %s record: %w", entity, err)
			}
		}
		log.Printf("seed: %s %d records", entity, len(raws))
	}
	return nil
}
