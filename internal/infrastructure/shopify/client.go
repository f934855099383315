// Package shopify implementa el cliente de la Admin API GraphQL: trae los
// pedidos del período con paginación por cursor y los convierte a la entidad
// del dominio. La agregación no vive acá.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
	"github.com/repuestosgt/dashboard-fel/pkg/config"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

const (
	pedidosPorPagina = 100
	maxPaginas       = 25 // tope duro contra tiendas con volúmenes inesperados
)

const consultaOrdenes = `
query($first: Int!, $after: String, $query: String) {
  orders(first: $first, after: $after, query: $query, sortKey: CREATED_AT) {
    pageInfo { hasNextPage endCursor }
    edges {
      node {
        id
        name
        createdAt
        displayFinancialStatus
        tags
        currentTotalPriceSet { shopMoney { amount } }
        totalDiscountsSet { shopMoney { amount } }
        totalRefundedSet { shopMoney { amount } }
        customer { displayName }
        app { name }
        channelInformation { channelDefinition { channelName } }
        lineItems(first: 50) {
          edges { node { title quantity originalUnitPriceSet { shopMoney { amount } } } }
        }
      }
    }
  }
}`

// Cliente acceso HTTP a la Admin API de la tienda.
type Cliente struct {
	http    *http.Client
	dominio string
	token   string
	version string
	log     *logger.Logger
}

// NewCliente construye el cliente GraphQL.
func NewCliente(cfg config.ShopifyConfig, log *logger.Logger) (*Cliente, error) {
	if cfg.ShopDomain == "" || cfg.AccessToken == "" {
		return nil, fmt.Errorf("shopify: shop_domain y access_token son obligatorios")
	}
	return &Cliente{
		http:    &http.Client{Timeout: 30 * time.Second},
		dominio: cfg.ShopDomain,
		token:   cfg.AccessToken,
		version: cfg.APIVersion,
		log:     log,
	}, nil
}

// Ordenes trae todos los pedidos creados dentro de la ventana del filtro,
// siguiendo los cursores hasta agotar las páginas (con tope duro).
func (c *Cliente) Ordenes(ctx context.Context, filtro entity.FiltroPeriodo) ([]entity.OrdenShopify, error) {
	consulta := consultaRango(filtro)

	var ordenes []entity.OrdenShopify
	var cursor *string

	for pagina := 0; pagina < maxPaginas; pagina++ {
		resp, err := c.pagina(ctx, consulta, cursor)
		if err != nil {
			return nil, err
		}

		for _, edge := range resp.Data.Orders.Edges {
			ordenes = append(ordenes, edge.Node.aEntidad())
		}

		if !resp.Data.Orders.PageInfo.HasNextPage {
			break
		}
		cursor = &resp.Data.Orders.PageInfo.EndCursor
	}

	c.log.Debug().Int("ordenes", len(ordenes)).Str("query", consulta).Msg("pedidos traídos de Shopify")
	return ordenes, nil
}

// consultaRango arma el filtro created_at de la Admin API para la ventana:
// [inicio del período, inicio del siguiente).
func consultaRango(f entity.FiltroPeriodo) string {
	var desde, hasta time.Time
	switch f.Tipo {
	case entity.PeriodoDia:
		desde = time.Date(f.Anio, time.Month(f.Mes), f.Dia, 0, 0, 0, 0, time.Local)
		hasta = desde.AddDate(0, 0, 1)
	case entity.PeriodoMes:
		desde = time.Date(f.Anio, time.Month(f.Mes), 1, 0, 0, 0, 0, time.Local)
		hasta = desde.AddDate(0, 1, 0)
	default:
		desde = time.Date(f.Anio, 1, 1, 0, 0, 0, 0, time.Local)
		hasta = desde.AddDate(1, 0, 0)
	}
	return fmt.Sprintf("created_at:>='%s' AND created_at:<'%s'",
		desde.Format("2006-01-02"), hasta.Format("2006-01-02"))
}

func (c *Cliente) pagina(ctx context.Context, consulta string, cursor *string) (*respuestaOrdenes, error) {
	cuerpo, err := json.Marshal(map[string]any{
		"query": consultaOrdenes,
		"variables": map[string]any{
			"first": pedidosPorPagina,
			"after": cursor,
			"query": consulta,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("shopify: serializar consulta: %w", err)
	}

	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.dominio, c.version)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(cuerpo))
	if err != nil {
		return nil, fmt.Errorf("shopify: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify: llamada GraphQL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("shopify: HTTP %d: %s", resp.StatusCode, string(b))
	}

	var decodificada respuestaOrdenes
	if err := json.NewDecoder(resp.Body).Decode(&decodificada); err != nil {
		return nil, fmt.Errorf("shopify: decodificar respuesta: %w", err)
	}
	if len(decodificada.Errors) > 0 {
		return nil, fmt.Errorf("shopify: GraphQL: %s", decodificada.Errors[0].Message)
	}
	return &decodificada, nil
}

// ── payload GraphQL ───────────────────────────────────────────────────────────

type respuestaOrdenes struct {
	Data struct {
		Orders struct {
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
			Edges []struct {
				Node nodoOrden `json:"node"`
			} `json:"edges"`
		} `json:"orders"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type montoSet struct {
	ShopMoney struct {
		Amount string `json:"amount"`
	} `json:"shopMoney"`
}

func (m montoSet) decimal() decimal.Decimal {
	d, err := decimal.NewFromString(m.ShopMoney.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

type nodoOrden struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	CreatedAt              string   `json:"createdAt"`
	DisplayFinancialStatus string   `json:"displayFinancialStatus"`
	Tags                   []string `json:"tags"`
	CurrentTotalPriceSet   montoSet `json:"currentTotalPriceSet"`
	TotalDiscountsSet      montoSet `json:"totalDiscountsSet"`
	TotalRefundedSet       montoSet `json:"totalRefundedSet"`
	Customer               *struct {
		DisplayName string `json:"displayName"`
	} `json:"customer"`
	App *struct {
		Name string `json:"name"`
	} `json:"app"`
	ChannelInformation *struct {
		ChannelDefinition *struct {
			ChannelName string `json:"channelName"`
		} `json:"channelDefinition"`
	} `json:"channelInformation"`
	LineItems struct {
		Edges []struct {
			Node struct {
				Title                string   `json:"title"`
				Quantity             int      `json:"quantity"`
				OriginalUnitPriceSet montoSet `json:"originalUnitPriceSet"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

func (n nodoOrden) aEntidad() entity.OrdenShopify {
	o := entity.OrdenShopify{
		ID:               n.ID,
		Nombre:           n.Name,
		CreadoEnRaw:      n.CreatedAt,
		EstadoFinanciero: n.DisplayFinancialStatus,
		Total:            n.CurrentTotalPriceSet.decimal(),
		Descuentos:       n.TotalDiscountsSet.decimal(),
		Reembolsos:       n.TotalRefundedSet.decimal(),
		Tags:             n.Tags,
	}
	if n.Customer != nil {
		o.Cliente = n.Customer.DisplayName
	}
	if n.App != nil {
		o.AppNombre = n.App.Name
	}
	if n.ChannelInformation != nil && n.ChannelInformation.ChannelDefinition != nil {
		o.CanalNombre = n.ChannelInformation.ChannelDefinition.ChannelName
	}
	for _, edge := range n.LineItems.Edges {
		o.Items = append(o.Items, entity.ItemOrdenShopify{
			Titulo:   edge.Node.Title,
			Cantidad: edge.Node.Quantity,
			Precio:   edge.Node.OriginalUnitPriceSet.decimal(),
		})
	}
	return o
}
